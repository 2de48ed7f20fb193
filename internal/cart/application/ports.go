package application

import (
	"context"
	"errors"
)

// SnapshotKey is the well-known storage slot the serialized cart lives under.
const SnapshotKey = "eCommerceAppCart"

// ErrNoSnapshot signals the absence of a persisted cart, which is a
// normal first-visit condition rather than a failure.
var ErrNoSnapshot = errors.New("no cart snapshot")

// SnapshotStore is the durable key-value slot the cart persists into.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}
