package application

import (
	"context"
	"log/slog"

	"github.com/ecommerce-app/storefront/internal/catalog/domain"
)

// Service is the read-only catalog facade the transport layer and the
// checkout path consume.
type Service struct {
	log  *slog.Logger
	repo Repository
}

func NewService(log *slog.Logger, repo Repository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) ListProductsByCategory(ctx context.Context, slug string) ([]domain.Product, error) {
	return s.repo.ListProductsByCategory(ctx, slug)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	return s.repo.GetCategory(ctx, id)
}
