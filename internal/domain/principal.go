package domain

import (
	"errors"
	"time"
)

// TenantID is the id of the owner account a row belongs to. It is a distinct
// type so a raw principal id cannot be passed where a tenant is expected.
type TenantID int

type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleEmployee Role = "EMPLOYEE"
)

const (
	DefaultLowStockThreshold = 5
	DefaultInactiveThreshold = 30
	DefaultVIPOrderThreshold = 5
)

var ErrEmployeeWithoutOwner = errors.New("employee account has no owner")

// User is a stored principal row. OwnerID is self-referential for owners and
// points to the owner for employees.
type User struct {
	ID                int
	Name              string
	Email             string
	Role              Role
	OwnerID           *int
	LowStockThreshold int
	InactiveThreshold int
	VIPOrderThreshold int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Principal is either an Owner or an Employee.
type Principal interface {
	PrincipalID() int
	TenantID() TenantID
}

type Owner struct {
	ID int
}

func (o Owner) PrincipalID() int   { return o.ID }
func (o Owner) TenantID() TenantID { return TenantID(o.ID) }

type Employee struct {
	ID      int
	OwnerID int
}

func (e Employee) PrincipalID() int   { return e.ID }
func (e Employee) TenantID() TenantID { return TenantID(e.OwnerID) }

// Principal converts the stored row into its tagged form.
func (u User) Principal() (Principal, error) {
	if u.Role == RoleOwner {
		return Owner{ID: u.ID}, nil
	}
	if u.OwnerID == nil || *u.OwnerID <= 0 {
		return nil, ErrEmployeeWithoutOwner
	}
	return Employee{ID: u.ID, OwnerID: *u.OwnerID}, nil
}

// TenantSettings are the thresholds configured on the owner row.
type TenantSettings struct {
	TenantID          TenantID
	LowStockThreshold int
	InactiveThreshold int
	VIPOrderThreshold int
}

func (u User) Settings() TenantSettings {
	s := TenantSettings{
		TenantID:          TenantID(u.ID),
		LowStockThreshold: u.LowStockThreshold,
		InactiveThreshold: u.InactiveThreshold,
		VIPOrderThreshold: u.VIPOrderThreshold,
	}
	if s.LowStockThreshold < 0 {
		s.LowStockThreshold = DefaultLowStockThreshold
	}
	if s.InactiveThreshold <= 0 {
		s.InactiveThreshold = DefaultInactiveThreshold
	}
	if s.VIPOrderThreshold <= 0 {
		s.VIPOrderThreshold = DefaultVIPOrderThreshold
	}
	return s
}
