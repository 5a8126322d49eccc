package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sellerhub/internal/domain"
	"sellerhub/internal/infrastructure/mysql"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx mysql.Tx, item domain.OrderItem) (int, error) {
	query := `INSERT INTO OrderItems (orderId, productId, quantity, priceAtPurchase, costAtPurchase) VALUES (?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, item.OrderID, item.ProductID, item.Quantity, item.PriceAtPurchase, item.CostAtPurchase)
	if err != nil {
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

// FindByOrderID reads the items inside tx, ordered by product id so callers
// can lock the products in that order.
func (r *MySQLOrderItemRepository) FindByOrderID(ctx context.Context, tx mysql.Tx, orderID int) ([]domain.OrderItem, error) {
	rows, err := tx.QueryContext(ctx, itemsQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	return scanItems(rows)
}

func (r *MySQLOrderItemRepository) ListByOrderID(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, itemsQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	return scanItems(rows)
}

const itemsQuery = `
	SELECT id, orderId, productId, quantity, priceAtPurchase, costAtPurchase
	FROM OrderItems
	WHERE orderId = ?
	ORDER BY productId
`

func scanItems(rows *sql.Rows) ([]domain.OrderItem, error) {
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PriceAtPurchase, &item.CostAtPurchase); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return items, nil
}
