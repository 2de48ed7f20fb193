// Package postgres is the durable order repository, selected when a
// Postgres URL is configured. Schema lives in migrations/schema.sql.
package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ecommerce-app/storefront/internal/order/application"
	"github.com/ecommerce-app/storefront/internal/order/domain"
	"github.com/ecommerce-app/storefront/pkg/money"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Save(ctx context.Context, o domain.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `INSERT INTO orders (id, user_id, user_name, tax, subtotal_amount, subtotal_currency, total_amount, total_currency, status, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (id) DO UPDATE SET status=$9`,
		o.ID, o.User.ID, o.User.Name, o.Cart.Tax,
		o.Cart.Subtotal.Amount, o.Cart.Subtotal.Currency,
		o.Cart.Total.Amount, o.Cart.Total.Currency,
		string(o.Status), o.Timestamp)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for pos, item := range o.Cart.Items {
		batch.Queue(`INSERT INTO order_items (id, order_id, reference_id, item_type, price_amount, price_currency, quantity, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			ON CONFLICT (id) DO NOTHING`,
			item.ID, o.ID, item.ReferenceID, string(item.Type),
			item.Price.Amount, item.Price.Currency, item.Quantity, pos)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repository) Get(ctx context.Context, id string) (domain.Order, error) {
	o, err := r.scanOrder(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := r.loadItems(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	o.Cart.Items = items
	return o, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM orders ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		o, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *Repository) scanOrder(ctx context.Context, id string) (domain.Order, error) {
	var (
		o                domain.Order
		status           string
		tax              decimal.Decimal
		subAmt, totAmt   decimal.Decimal
		subCur, totCur   string
		userID, userName string
	)
	err := r.pool.QueryRow(ctx, `SELECT id, user_id, user_name, tax, subtotal_amount, subtotal_currency, total_amount, total_currency, status, created_at
			FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &userID, &userName, &tax, &subAmt, &subCur, &totAmt, &totCur, &status, &o.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, application.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	o.User = domain.User{ID: userID, Name: userName}
	o.Status = domain.Status(status)
	o.Cart = domain.Cart{
		Tax:      tax,
		Subtotal: money.New(subAmt, subCur),
		Total:    money.New(totAmt, totCur),
	}
	return o, nil
}

func (r *Repository) loadItems(ctx context.Context, orderID string) ([]domain.LineItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, reference_id, item_type, price_amount, price_currency, quantity
			FROM order_items WHERE order_id=$1 ORDER BY position`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var (
			item     domain.LineItem
			itemType string
			amount   decimal.Decimal
			currency string
		)
		if err := rows.Scan(&item.ID, &item.ReferenceID, &itemType, &amount, &currency, &item.Quantity); err != nil {
			return nil, err
		}
		item.Type = domain.LineItemType(itemType)
		item.Price = money.New(amount, currency)
		items = append(items, item)
	}
	return items, rows.Err()
}
