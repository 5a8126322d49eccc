package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func TestUser_Principal_Owner(t *testing.T) {
	u := User{ID: 10, Role: RoleOwner, OwnerID: intPtr(10)}

	p, err := u.Principal()
	require.NoError(t, err)
	assert.Equal(t, Owner{ID: 10}, p)
	assert.Equal(t, TenantID(10), p.TenantID())
}

func TestUser_Principal_OwnerBeforeBackfill(t *testing.T) {
	u := User{ID: 11, Role: RoleOwner}

	p, err := u.Principal()
	require.NoError(t, err)
	assert.Equal(t, TenantID(11), p.TenantID())
}

func TestUser_Principal_Employee(t *testing.T) {
	u := User{ID: 20, Role: RoleEmployee, OwnerID: intPtr(10)}

	p, err := u.Principal()
	require.NoError(t, err)
	assert.Equal(t, Employee{ID: 20, OwnerID: 10}, p)
	assert.Equal(t, 20, p.PrincipalID())
	assert.Equal(t, TenantID(10), p.TenantID())
}

func TestUser_Principal_EmployeeWithoutOwner(t *testing.T) {
	tests := []struct {
		name    string
		ownerID *int
	}{
		{"nil owner", nil},
		{"zero owner", intPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{ID: 21, Role: RoleEmployee, OwnerID: tt.ownerID}

			p, err := u.Principal()
			assert.ErrorIs(t, err, ErrEmployeeWithoutOwner)
			assert.Nil(t, p)
		})
	}
}

func TestUser_Settings_Defaults(t *testing.T) {
	u := User{ID: 10, Role: RoleOwner, LowStockThreshold: -1}

	s := u.Settings()
	assert.Equal(t, TenantID(10), s.TenantID)
	assert.Equal(t, DefaultLowStockThreshold, s.LowStockThreshold)
	assert.Equal(t, DefaultInactiveThreshold, s.InactiveThreshold)
	assert.Equal(t, DefaultVIPOrderThreshold, s.VIPOrderThreshold)
}

func TestUser_Settings_Configured(t *testing.T) {
	u := User{ID: 10, Role: RoleOwner, LowStockThreshold: 0, InactiveThreshold: 45, VIPOrderThreshold: 8}

	s := u.Settings()
	assert.Equal(t, 0, s.LowStockThreshold)
	assert.Equal(t, 45, s.InactiveThreshold)
	assert.Equal(t, 8, s.VIPOrderThreshold)
}

func TestProduct_IsLowStock(t *testing.T) {
	p := Product{StockQuantity: 5}

	assert.True(t, p.IsLowStock(5))
	assert.False(t, p.IsLowStock(4))
}
