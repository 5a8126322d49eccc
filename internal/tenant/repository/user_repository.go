package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sellerhub/internal/domain"
	"sellerhub/internal/errors"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	query := `
		SELECT id, name, email, role, ownerId,
		       lowStockThreshold, inactiveThreshold, vipOrderThreshold,
		       createdAt, updatedAt
		FROM Users
		WHERE id = ?
	`

	var (
		user    domain.User
		ownerID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &ownerID,
		&user.LowStockThreshold, &user.InactiveThreshold, &user.VIPOrderThreshold,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	if ownerID.Valid {
		v := int(ownerID.Int64)
		user.OwnerID = &v
	}

	return &user, nil
}

// UpdateSettings writes the thresholds on the owner row of s.TenantID.
func (r *MySQLUserRepository) UpdateSettings(ctx context.Context, s domain.TenantSettings) error {
	query := `
		UPDATE Users
		SET lowStockThreshold = ?, inactiveThreshold = ?, vipOrderThreshold = ?
		WHERE id = ? AND role = ?
	`

	if _, err := r.db.ExecContext(ctx, query,
		s.LowStockThreshold, s.InactiveThreshold, s.VIPOrderThreshold,
		int(s.TenantID), domain.RoleOwner,
	); err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}

	return nil
}
