package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	catalogapp "github.com/ecommerce-app/storefront/internal/catalog/application"
	catalogdomain "github.com/ecommerce-app/storefront/internal/catalog/domain"
	"github.com/ecommerce-app/storefront/internal/order/domain"
	"github.com/ecommerce-app/storefront/pkg/lifecycle"
	"github.com/ecommerce-app/storefront/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service converts checkout requests into persisted orders and drives
// their status lifecycle.
type Service struct {
	log             *slog.Logger
	repo            Repository
	catalog         Catalog
	tasks           lifecycle.Store
	events          EventPublisher
	taxRate         decimal.Decimal
	completionDelay time.Duration
	now             func() time.Time
}

func NewService(
	log *slog.Logger,
	repo Repository,
	catalog Catalog,
	tasks lifecycle.Store,
	events EventPublisher,
	taxRate decimal.Decimal,
	completionDelay time.Duration,
) *Service {
	return &Service{
		log:             log,
		repo:            repo,
		catalog:         catalog,
		tasks:           tasks,
		events:          events,
		taxRate:         taxRate,
		completionDelay: completionDelay,
		now:             time.Now,
	}
}

// Checkout validates the requested items against the catalog, builds
// the priced order, persists it and schedules its completion. Any
// validation failure aborts before state is touched; no partial order
// is ever stored.
func (s *Service) Checkout(ctx context.Context, user domain.User, items []domain.CheckoutItem) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCheckout
	}
	if user.ID == "" {
		user = domain.DemoUser()
	}

	resolved, err := s.resolveProducts(ctx, items)
	if err != nil {
		return domain.Order{}, err
	}

	cart, err := s.priceCart(resolved)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:        uuid.NewString(),
		User:      user,
		Cart:      cart,
		Status:    domain.StatusPending,
		Timestamp: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}

	task := lifecycle.Task{
		ID:      uuid.NewString(),
		OrderID: order.ID,
		RunAt:   s.now().Add(s.completionDelay),
	}
	if err := s.tasks.Enqueue(ctx, task); err != nil {
		// The order exists; it just stays PENDING until an operator steps in.
		s.log.Error("scheduling order completion failed", "order_id", order.ID, "err", err)
	}

	s.publish(ctx, domain.EventOrderCreated, order.ID, domain.OrderCreated{
		OrderID:  order.ID,
		UserID:   order.User.ID,
		Subtotal: order.Cart.Subtotal,
		Total:    order.Cart.Total,
		Items:    order.Cart.Items,
	})

	s.log.Info("order placed",
		"order_id", order.ID,
		"user_id", order.User.ID,
		"items", len(order.Cart.Items),
		"total", order.Cart.Total.String(),
	)
	return order, nil
}

// resolvedItem pairs a catalog product with the effective quantity.
type resolvedItem struct {
	product  catalogdomain.Product
	quantity int
}

// resolveProducts maps distinct requested ids onto catalog products,
// all-or-nothing. Duplicate ids collapse onto their first occurrence
// and a missing or non-positive quantity means 1.
func (s *Service) resolveProducts(ctx context.Context, items []domain.CheckoutItem) ([]resolvedItem, error) {
	seen := make(map[string]bool, len(items))
	resolved := make([]resolvedItem, 0, len(items))
	var missing []string

	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true

		product, err := s.catalog.GetProduct(ctx, item.ID)
		if errors.Is(err, catalogapp.ErrNotFound) {
			missing = append(missing, item.ID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve product %s: %w", item.ID, err)
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		resolved = append(resolved, resolvedItem{product: product, quantity: quantity})
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvableProducts, strings.Join(missing, ", "))
	}
	return resolved, nil
}

// priceCart assembles the line items and derives subtotal and total.
// Each line item carries the unit price; quantity stays a separate
// field. Tax applies to the whole subtotal.
func (s *Service) priceCart(resolved []resolvedItem) (domain.Cart, error) {
	items := make([]domain.LineItem, 0, len(resolved))
	extended := make([]money.Money, 0, len(resolved))

	for _, r := range resolved {
		items = append(items, domain.LineItem{
			ID:          uuid.NewString(),
			ReferenceID: r.product.ID,
			Type:        domain.TypeProduct,
			Price:       r.product.Price,
			Quantity:    r.quantity,
		})
		price, err := money.Multiply(r.product.Price, r.quantity)
		if err != nil {
			return domain.Cart{}, err
		}
		extended = append(extended, price)
	}

	subtotal, err := money.Sum(extended)
	if err != nil {
		return domain.Cart{}, err
	}

	return domain.Cart{
		Tax:      s.taxRate,
		Items:    items,
		Subtotal: subtotal,
		Total:    money.ApplyTax(subtotal, s.taxRate),
	}, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// Handle is the lifecycle transition: a due task moves its order from
// PENDING to COMPLETED. The write replaces the full order record;
// status is the only field that changes.
func (s *Service) Handle(ctx context.Context, task lifecycle.Task) error {
	order, err := s.repo.Get(ctx, task.OrderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", task.OrderID, err)
	}
	if order.Status != domain.StatusPending {
		return nil
	}

	order.Status = domain.StatusCompleted
	if err := s.repo.Save(ctx, order); err != nil {
		return fmt.Errorf("complete order %s: %w", task.OrderID, err)
	}

	s.publish(ctx, domain.EventOrderCompleted, order.ID, domain.OrderCompleted{
		OrderID:     order.ID,
		CompletedAt: s.now().UTC(),
	})
	s.log.Info("order completed", "order_id", order.ID)
	return nil
}

func (s *Service) publish(ctx context.Context, eventType, orderID string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.log.Error("event marshal failed", "type", eventType, "order_id", orderID, "err", err)
		return
	}
	if err := s.events.Publish(ctx, eventType, orderID, payload); err != nil {
		s.log.Error("event publish failed", "type", eventType, "order_id", orderID, "err", err)
	}
}
