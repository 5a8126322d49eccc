package usecase

import (
	"context"
	"sync"
	"time"

	"sellerhub/internal/domain"
	"sellerhub/internal/dto"
)

// Mock implementations
type mockOrderCreator struct {
	CreateOrderFunc func(ctx context.Context, tenantID domain.TenantID, customerID int, lines []dto.OrderLine, meta dto.OrderMeta) (*domain.Order, []domain.Product, error)
}

func (m *mockOrderCreator) CreateOrder(ctx context.Context, tenantID domain.TenantID, customerID int, lines []dto.OrderLine, meta dto.OrderMeta) (*domain.Order, []domain.Product, error) {
	return m.CreateOrderFunc(ctx, tenantID, customerID, lines, meta)
}

type mockOrderTransitioner struct {
	TransitionFunc func(ctx context.Context, orderID int, tenantID domain.TenantID, status domain.OrderStatus, trackingNumber *string) (*dto.TransitionResult, error)
}

func (m *mockOrderTransitioner) Transition(ctx context.Context, orderID int, tenantID domain.TenantID, status domain.OrderStatus, trackingNumber *string) (*dto.TransitionResult, error) {
	return m.TransitionFunc(ctx, orderID, tenantID, status, trackingNumber)
}

type mockTenantResolver struct {
	ResolveFunc  func(ctx context.Context, principalID int) (domain.TenantID, error)
	SettingsFunc func(ctx context.Context, tenantID domain.TenantID) (domain.TenantSettings, error)
}

func (m *mockTenantResolver) Resolve(ctx context.Context, principalID int) (domain.TenantID, error) {
	return m.ResolveFunc(ctx, principalID)
}

func (m *mockTenantResolver) Settings(ctx context.Context, tenantID domain.TenantID) (domain.TenantSettings, error) {
	return m.SettingsFunc(ctx, tenantID)
}

type mockOrderReader struct {
	FindByIDFunc        func(ctx context.Context, id int, tenantID domain.TenantID) (*domain.Order, error)
	FindAllByTenantFunc func(ctx context.Context, tenantID domain.TenantID) ([]domain.Order, error)
}

func (m *mockOrderReader) FindByID(ctx context.Context, id int, tenantID domain.TenantID) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id, tenantID)
}

func (m *mockOrderReader) FindAllByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Order, error) {
	return m.FindAllByTenantFunc(ctx, tenantID)
}

type mockOrderItemReader struct {
	ListByOrderIDFunc func(ctx context.Context, orderID int) ([]domain.OrderItem, error)
}

func (m *mockOrderItemReader) ListByOrderID(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	return m.ListByOrderIDFunc(ctx, orderID)
}

// recordingMetrics guarda lo registrado para poder verificarlo.
type recordingMetrics struct {
	mu          sync.Mutex
	orders      []string
	transitions []string
	adjustments map[string]int
	lowStock    int
	txOps       []string
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{adjustments: map[string]int{}}
}

func (m *recordingMetrics) RecordOrder(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, kind)
}

func (m *recordingMetrics) RecordTransition(effect string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.transitions = append(m.transitions, effect+"/"+outcome)
}

func (m *recordingMetrics) RecordStockAdjustments(direction string, lines int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adjustments[direction] += lines
}

func (m *recordingMetrics) RecordLowStock(products int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lowStock += products
}

func (m *recordingMetrics) ObserveTx(operation string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txOps = append(m.txOps, operation)
}

// resolvesTo devuelve un resolver que mapea cualquier principal al tenant dado.
func resolvesTo(tenantID domain.TenantID) *mockTenantResolver {
	return &mockTenantResolver{
		ResolveFunc: func(ctx context.Context, principalID int) (domain.TenantID, error) {
			return tenantID, nil
		},
		SettingsFunc: func(ctx context.Context, id domain.TenantID) (domain.TenantSettings, error) {
			return domain.TenantSettings{TenantID: id, LowStockThreshold: domain.DefaultLowStockThreshold}, nil
		},
	}
}

func strPtr(s string) *string {
	return &s
}
