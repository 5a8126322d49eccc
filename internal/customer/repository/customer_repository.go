package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sellerhub/internal/domain"
	"sellerhub/internal/errors"
	"sellerhub/internal/infrastructure/mysql"
)

const customerColumns = `id, userId, name, phone, city, address, totalOrders, totalSpent,
		       lastOrderDate, favoriteItem, lastMarketingSentAt, createdAt, updatedAt`

type MySQLCustomerRepository struct {
	db *sql.DB
}

func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (domain.Customer, error) {
	var (
		c               domain.Customer
		lastOrderDate   sql.NullTime
		favoriteItem    sql.NullString
		lastMarketingAt sql.NullTime
	)
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Phone, &c.City, &c.Address,
		&c.TotalOrders, &c.TotalSpent,
		&lastOrderDate, &favoriteItem, &lastMarketingAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}

	if lastOrderDate.Valid {
		c.LastOrderDate = &lastOrderDate.Time
	}
	if favoriteItem.Valid {
		c.FavoriteItem = &favoriteItem.String
	}
	if lastMarketingAt.Valid {
		c.LastMarketingSentAt = &lastMarketingAt.Time
	}
	return c, nil
}

func (r *MySQLCustomerRepository) Insert(ctx context.Context, c domain.Customer) (int, error) {
	query := `INSERT INTO Customers (userId, name, phone, city, address) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, c.TenantID, c.Name, c.Phone, c.City, c.Address)
	if mysql.IsDuplicateEntry(err) {
		return 0, errors.NewConflictError(fmt.Sprintf("a customer with phone %s already exists", c.Phone))
	}
	if err != nil {
		return 0, fmt.Errorf("inserting customer: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

func (r *MySQLCustomerRepository) ExistsByPhone(ctx context.Context, tenantID domain.TenantID, phone string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM Customers WHERE userId = ? AND phone = ?)`, tenantID, phone).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking customer phone: %w", err)
	}
	return exists, nil
}

func (r *MySQLCustomerRepository) FindByID(ctx context.Context, id int, tenantID domain.TenantID) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM Customers WHERE id = ? AND userId = ?`, customerColumns)

	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by id: %w", err)
	}

	return &c, nil
}

func (r *MySQLCustomerRepository) FindAllByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM Customers WHERE userId = ? ORDER BY createdAt DESC, id DESC`, customerColumns)

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer row: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

// FindByIDForUpdate locks the customer row so its aggregates can be rewritten.
func (r *MySQLCustomerRepository) FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id int) (*domain.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM Customers WHERE id = ? FOR UPDATE`, customerColumns)

	c, err := scanCustomer(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("locking customer: %w", err)
	}

	return &c, nil
}

func (r *MySQLCustomerRepository) UpdateStats(ctx context.Context, tx mysql.Tx, c domain.Customer) error {
	query := `
		UPDATE Customers
		SET totalOrders = ?, totalSpent = ?, lastOrderDate = ?, favoriteItem = ?
		WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, c.TotalOrders, c.TotalSpent, c.LastOrderDate, c.FavoriteItem, c.ID)
	if err != nil {
		return fmt.Errorf("updating customer stats: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", c.ID))
	}

	return nil
}

// QuantitiesByProduct sums the quantity the customer bought of each product
// over all of their orders, including the uncommitted ones of tx.
func (r *MySQLCustomerRepository) QuantitiesByProduct(ctx context.Context, tx mysql.Tx, customerID int) ([]domain.ProductQuantity, error) {
	query := `
		SELECT oi.productId, p.name, SUM(oi.quantity) AS totalQty
		FROM OrderItems oi
		JOIN Orders o ON o.id = oi.orderId
		JOIN Products p ON p.id = oi.productId
		WHERE o.customerId = ?
		GROUP BY oi.productId, p.name
		ORDER BY oi.productId`

	rows, err := tx.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("querying customer quantities: %w", err)
	}
	defer rows.Close()

	var quantities []domain.ProductQuantity
	for rows.Next() {
		var q domain.ProductQuantity
		if err := rows.Scan(&q.ProductID, &q.ProductName, &q.Quantity); err != nil {
			return nil, fmt.Errorf("scanning customer quantity row: %w", err)
		}
		quantities = append(quantities, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer quantity rows: %w", err)
	}

	return quantities, nil
}
