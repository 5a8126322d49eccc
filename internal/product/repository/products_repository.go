package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sellerhub/internal/domain"
	"sellerhub/internal/errors"
	"sellerhub/internal/infrastructure/mysql"
)

const productColumns = `id, userId, name, costPrice, sellPrice, stockQuantity, isArchived, createdAt, updatedAt`

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.TenantID, &p.Name, &p.CostPrice, &p.SellPrice,
		&p.StockQuantity, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *MySQLRepository) FindByIDsAndTenant(ctx context.Context, ids []int, tenantID domain.TenantID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, tenantID)

	query := fmt.Sprintf(`
		SELECT %s
		FROM Products
		WHERE id IN (%s)
		  AND userId = ?
		  AND isArchived = 0
		ORDER BY id`,
		productColumns,
		strings.Join(placeholders, ", "),
	)

	return r.query(ctx, query, args...)
}

func (r *MySQLRepository) FindAllByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM Products
		WHERE userId = ?
		  AND isArchived = 0
		ORDER BY id`, productColumns)

	return r.query(ctx, query, tenantID)
}

func (r *MySQLRepository) query(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLRepository) Insert(ctx context.Context, p domain.Product) (int, error) {
	query := `
		INSERT INTO Products (userId, name, costPrice, sellPrice, stockQuantity)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, p.TenantID, p.Name, p.CostPrice, p.SellPrice, p.StockQuantity)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return int(lastInsertID), nil
}

// FindByIDForUpdate locks the product row until tx ends. The row is looked up
// by id alone so callers can tell a missing product from a foreign one.
func (r *MySQLRepository) FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id int) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM Products WHERE id = ? FOR UPDATE`, productColumns)

	p, err := scanProduct(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("locking product: %w", err)
	}

	return &p, nil
}

func (r *MySQLRepository) UpdateStockQuantity(ctx context.Context, tx mysql.Tx, id int, quantity int) error {
	query := `UPDATE Products SET stockQuantity = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, quantity, id)
	if err != nil {
		return fmt.Errorf("updating stock quantity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	return nil
}

func (r *MySQLRepository) HasOrderItems(ctx context.Context, tx mysql.Tx, id int) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM OrderItems WHERE productId = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking order items for product: %w", err)
	}
	return exists, nil
}

func (r *MySQLRepository) Archive(ctx context.Context, tx mysql.Tx, id int) error {
	if _, err := tx.ExecContext(ctx, `UPDATE Products SET isArchived = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("archiving product: %w", err)
	}
	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, tx mysql.Tx, id int) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM Products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}
