package product

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sellerhub/internal/domain"
	"sellerhub/internal/errors"
	"sellerhub/internal/infrastructure/mysql"
)

type productService struct {
	db        TransactionManager
	repo      Repository
	txTimeout time.Duration
	logger    *zap.Logger
}

func NewService(db TransactionManager, repo Repository, txTimeout time.Duration, logger *zap.Logger) Service {
	return &productService{db: db, repo: repo, txTimeout: txTimeout, logger: logger}
}

func (s *productService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, mysql.Classify("creating product", err)
	}
	p.ID = id
	return &p, nil
}

func (s *productService) ListByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Product, error) {
	products, err := s.repo.FindAllByTenant(ctx, tenantID)
	if err != nil {
		return nil, mysql.Classify("listing products", err)
	}
	return products, nil
}

func (s *productService) GetProductsByIDsAndTenant(ctx context.Context, ids []int, tenantID domain.TenantID) ([]domain.Product, []int, error) {
	found, err := s.repo.FindByIDsAndTenant(ctx, ids, tenantID)
	if err != nil {
		return nil, nil, mysql.Classify("searching products", err)
	}

	foundSet := make(map[int]struct{}, len(found))
	for _, p := range found {
		foundSet[p.ID] = struct{}{}
	}

	var notFoundIDs []int
	for _, id := range ids {
		if _, ok := foundSet[id]; !ok {
			notFoundIDs = append(notFoundIDs, id)
		}
	}

	return found, notFoundIDs, nil
}

// Delete archives a product that appears on any order and removes it
// otherwise. The product row stays locked for the whole decision so a
// concurrent sale cannot slip in between the check and the delete.
func (s *productService) Delete(ctx context.Context, productID int, tenantID domain.TenantID) (bool, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return false, mysql.Classify("beginning transaction", err)
	}
	defer tx.Rollback()

	product, err := s.repo.FindByIDForUpdate(txCtx, tx, productID)
	if err != nil {
		return false, mysql.Classify("locking product", err)
	}
	if product.TenantID != tenantID || product.IsArchived {
		return false, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", productID))
	}

	referenced, err := s.repo.HasOrderItems(txCtx, tx, productID)
	if err != nil {
		return false, mysql.Classify("checking sales history", err)
	}

	if referenced {
		err = s.repo.Archive(txCtx, tx, productID)
	} else {
		err = s.repo.Delete(txCtx, tx, productID)
	}
	if err != nil {
		return false, mysql.Classify("deleting product", err)
	}

	if err := tx.Commit(); err != nil {
		return false, mysql.Classify("committing product delete", err)
	}

	s.logger.Info("product removed", zap.Int("productId", productID), zap.Int("tenantId", int(tenantID)), zap.Bool("archived", referenced))
	return referenced, nil
}
