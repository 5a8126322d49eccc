package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sellerhub/internal/domain"
	"sellerhub/internal/errors"
	"sellerhub/internal/infrastructure/mysql"
)

const orderColumns = `id, userId, customerId, status, totalAmount, totalProfit,
		       trackingNumber, courierName, notes, createdAt, updatedAt`

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o        domain.Order
		tracking sql.NullString
		notes    sql.NullString
	)
	err := row.Scan(
		&o.ID, &o.TenantID, &o.CustomerID, &o.Status, &o.TotalAmount, &o.TotalProfit,
		&tracking, &o.CourierName, &notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return o, err
	}

	if tracking.Valid {
		o.TrackingNumber = &tracking.String
	}
	o.Notes = notes.String
	return o, nil
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx mysql.Tx, o domain.Order) (int, error) {
	query := `
		INSERT INTO Orders (userId, customerId, status, totalAmount, totalProfit, trackingNumber, courierName, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		o.TenantID, o.CustomerID, o.Status, o.TotalAmount, o.TotalProfit,
		o.TrackingNumber, o.CourierName, o.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

// FindByIDForUpdate locks the order row. An order of another tenant is
// reported as not found.
func (r *MySQLOrderRepository) FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id int, tenantID domain.TenantID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE id = ? AND userId = ? FOR UPDATE`

	order, err := scanOrder(tx.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("locking order: %w", err)
	}

	return &order, nil
}

// UpdateStatus sets the status and, when trackingNumber is not nil, the
// tracking number. A nil tracking number keeps the stored one. It must run
// on the transaction that locked the order.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, tx mysql.Tx, id int, status domain.OrderStatus, trackingNumber *string) error {
	query := `UPDATE Orders SET status = ?, trackingNumber = COALESCE(?, trackingNumber) WHERE id = ?`

	// Callers hold the row lock from FindByIDForUpdate, so the row exists.
	// Zero affected rows only means the values did not change.
	if _, err := tx.ExecContext(ctx, query, status, trackingNumber, id); err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id int, tenantID domain.TenantID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE id = ? AND userId = ?`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &order, nil
}

func (r *MySQLOrderRepository) FindAllByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM Orders WHERE userId = ? ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	return orders, nil
}
