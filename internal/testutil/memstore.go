package testutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"

	"sellerhub/internal/domain"
	apperrors "sellerhub/internal/errors"
	"sellerhub/internal/infrastructure/mysql"
)

var errRawSQL = errors.New("memstore: raw SQL is not supported")

// MemStore es un almacén en memoria con transacciones serializadas. Rollback
// restaura la foto tomada en BeginTx, así los tests pueden comprobar que un
// fallo no deja escrituras a medias.
type MemStore struct {
	txSem chan struct{}

	mu        sync.Mutex
	users     map[int]domain.User
	products  map[int]domain.Product
	customers map[int]domain.Customer
	orders    map[int]domain.Order
	items     []domain.OrderItem
	seq       int
	lockLog   []string
	failures  map[string]error
	commits   int
}

type memSnapshot struct {
	products  map[int]domain.Product
	customers map[int]domain.Customer
	orders    map[int]domain.Order
	items     []domain.OrderItem
	seq       int
}

func NewMemStore() *MemStore {
	return &MemStore{
		txSem:     make(chan struct{}, 1),
		users:     map[int]domain.User{},
		products:  map[int]domain.Product{},
		customers: map[int]domain.Customer{},
		orders:    map[int]domain.Order{},
		failures:  map[string]error{},
		seq:       1000,
	}
}

// Seeding

func (s *MemStore) AddOwner(id int) {
	s.AddUser(domain.User{ID: id, Role: domain.RoleOwner, OwnerID: &id, LowStockThreshold: domain.DefaultLowStockThreshold})
}

func (s *MemStore) AddEmployee(id, ownerID int) {
	s.AddUser(domain.User{ID: id, Role: domain.RoleEmployee, OwnerID: &ownerID})
}

func (s *MemStore) AddUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *MemStore) AddProduct(p domain.Product) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID()
	}
	s.products[p.ID] = p
	return p.ID
}

func (s *MemStore) AddCustomer(c domain.Customer) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.nextID()
	}
	s.customers[c.ID] = c
	return c.ID
}

func (s *MemStore) SetStock(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.products[productID]
	p.StockQuantity = quantity
	s.products[productID] = p
}

// Inspection

func (s *MemStore) Product(id int) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id]
}

func (s *MemStore) Customer(id int) domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers[id]
}

func (s *MemStore) Order(id int) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	return o, ok
}

func (s *MemStore) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *MemStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *MemStore) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// LockLog lists the rows locked FOR UPDATE, in acquisition order, as
// "product:3", "customer:7" or "order:9".
func (s *MemStore) LockLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lockLog...)
}

func (s *MemStore) ResetLockLog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockLog = nil
}

// FailOn makes the named operation, e.g. "Orders.Insert" or "Commit", return err.
func (s *MemStore) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *MemStore) nextID() int {
	s.seq++
	return s.seq
}

func (s *MemStore) failure(op string) error {
	return s.failures[op]
}

func (s *MemStore) snapshot() memSnapshot {
	snap := memSnapshot{
		products:  make(map[int]domain.Product, len(s.products)),
		customers: make(map[int]domain.Customer, len(s.customers)),
		orders:    make(map[int]domain.Order, len(s.orders)),
		items:     append([]domain.OrderItem(nil), s.items...),
		seq:       s.seq,
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.customers {
		snap.customers[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	return snap
}

func (s *MemStore) restore(snap memSnapshot) {
	s.products = snap.products
	s.customers = snap.customers
	s.orders = snap.orders
	s.items = snap.items
	s.seq = snap.seq
}

// Transactions

func (s *MemStore) BeginTx(ctx context.Context, opts *sql.TxOptions) (mysql.Tx, error) {
	s.mu.Lock()
	err := s.failure("BeginTx")
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	select {
	case s.txSem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return &memTx{store: s, snap: s.snapshot()}, nil
}

type memTx struct {
	store *MemStore
	snap  memSnapshot
	done  bool
}

func (tx *memTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, errRawSQL
}

func (tx *memTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, errRawSQL
}

func (tx *memTx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func (tx *memTx) Commit() error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.done {
		return sql.ErrTxDone
	}
	tx.done = true
	defer func() { <-s.txSem }()

	if err := s.failure("Commit"); err != nil {
		s.restore(tx.snap)
		return err
	}
	s.commits++
	return nil
}

func (tx *memTx) Rollback() error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.done {
		return sql.ErrTxDone
	}
	tx.done = true
	s.restore(tx.snap)
	<-s.txSem
	return nil
}

func (s *MemStore) checkTx(tx mysql.Tx) error {
	mt, ok := tx.(*memTx)
	if !ok || mt == nil || mt.store != s {
		return errors.New("memstore: statement outside a memstore transaction")
	}
	if mt.done {
		return sql.ErrTxDone
	}
	return nil
}

// Users

type MemUsers struct{ s *MemStore }

func (s *MemStore) Users() *MemUsers { return &MemUsers{s: s} }

func (r *MemUsers) FindByID(ctx context.Context, id int) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Users.FindByID"); err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	return &u, nil
}

// UpdateSettings writes the thresholds on the owner row; other rows are left alone.
func (r *MemUsers) UpdateSettings(ctx context.Context, settings domain.TenantSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Users.UpdateSettings"); err != nil {
		return err
	}
	u, ok := r.s.users[int(settings.TenantID)]
	if !ok || u.Role != domain.RoleOwner {
		return nil
	}
	u.LowStockThreshold = settings.LowStockThreshold
	u.InactiveThreshold = settings.InactiveThreshold
	u.VIPOrderThreshold = settings.VIPOrderThreshold
	r.s.users[u.ID] = u
	return nil
}

// Products

type MemProducts struct{ s *MemStore }

func (s *MemStore) Products() *MemProducts { return &MemProducts{s: s} }

func (r *MemProducts) Insert(ctx context.Context, p domain.Product) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("Products.Insert"); err != nil {
		return 0, err
	}
	p.ID = r.s.nextID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.s.products[p.ID] = p
	return p.ID, nil
}

func (r *MemProducts) FindAllByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Product
	for _, p := range r.s.products {
		if p.TenantID == tenantID && !p.IsArchived {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemProducts) FindByIDsAndTenant(ctx context.Context, ids []int, tenantID domain.TenantID) ([]domain.Product, error) {
	all, err := r.FindAllByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []domain.Product
	for _, p := range all {
		if wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemProducts) FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id int) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return nil, err
	}
	if err := r.s.failure("Products.FindByIDForUpdate"); err != nil {
		return nil, err
	}
	r.s.lockLog = append(r.s.lockLog, fmt.Sprintf("product:%d", id))
	p, ok := r.s.products[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	return &p, nil
}

func (r *MemProducts) UpdateStockQuantity(ctx context.Context, tx mysql.Tx, id int, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return err
	}
	if err := r.s.failure("Products.UpdateStockQuantity"); err != nil {
		return err
	}
	p, ok := r.s.products[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if quantity < 0 {
		return &mysqldriver.MySQLError{Number: 3819, Message: "Check constraint 'chk_stock_non_negative' is violated."}
	}
	p.StockQuantity = quantity
	r.s.products[id] = p
	return nil
}

func (r *MemProducts) HasOrderItems(ctx context.Context, tx mysql.Tx, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return false, err
	}
	for _, item := range r.s.items {
		if item.ProductID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemProducts) Archive(ctx context.Context, tx mysql.Tx, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return err
	}
	p := r.s.products[id]
	p.IsArchived = true
	r.s.products[id] = p
	return nil
}

func (r *MemProducts) Delete(ctx context.Context, tx mysql.Tx, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return err
	}
	for _, item := range r.s.items {
		if item.ProductID == id {
			return &mysqldriver.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"}
		}
	}
	delete(r.s.products, id)
	return nil
}

// Customers

type MemCustomers struct{ s *MemStore }

func (s *MemStore) Customers() *MemCustomers { return &MemCustomers{s: s} }

func (r *MemCustomers) Insert(ctx context.Context, c domain.Customer) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.customers {
		if existing.TenantID == c.TenantID && existing.Phone == c.Phone {
			return 0, apperrors.NewConflictError(fmt.Sprintf("a customer with phone %s already exists", c.Phone))
		}
	}
	c.ID = r.s.nextID()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.s.customers[c.ID] = c
	return c.ID, nil
}

func (r *MemCustomers) ExistsByPhone(ctx context.Context, tenantID domain.TenantID, phone string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.TenantID == tenantID && c.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemCustomers) FindByID(ctx context.Context, id int, tenantID domain.TenantID) (*domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", id))
	}
	return &c, nil
}

func (r *MemCustomers) FindAllByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Customer
	for _, c := range r.s.customers {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemCustomers) FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id int) (*domain.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return nil, err
	}
	r.s.lockLog = append(r.s.lockLog, fmt.Sprintf("customer:%d", id))
	c, ok := r.s.customers[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", id))
	}
	return &c, nil
}

func (r *MemCustomers) UpdateStats(ctx context.Context, tx mysql.Tx, c domain.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return err
	}
	if err := r.s.failure("Customers.UpdateStats"); err != nil {
		return err
	}
	stored, ok := r.s.customers[c.ID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", c.ID))
	}
	stored.TotalOrders = c.TotalOrders
	stored.TotalSpent = c.TotalSpent
	stored.LastOrderDate = c.LastOrderDate
	stored.FavoriteItem = c.FavoriteItem
	r.s.customers[c.ID] = stored
	return nil
}

func (r *MemCustomers) QuantitiesByProduct(ctx context.Context, tx mysql.Tx, customerID int) ([]domain.ProductQuantity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return nil, err
	}
	totals := map[int]int{}
	for _, item := range r.s.items {
		if o, ok := r.s.orders[item.OrderID]; ok && o.CustomerID == customerID {
			totals[item.ProductID] += item.Quantity
		}
	}
	out := make([]domain.ProductQuantity, 0, len(totals))
	for productID, qty := range totals {
		out = append(out, domain.ProductQuantity{
			ProductID:   productID,
			ProductName: r.s.products[productID].Name,
			Quantity:    qty,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// Orders

type MemOrders struct{ s *MemStore }

func (s *MemStore) Orders() *MemOrders { return &MemOrders{s: s} }

func (r *MemOrders) Insert(ctx context.Context, tx mysql.Tx, o domain.Order) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return 0, err
	}
	if err := r.s.failure("Orders.Insert"); err != nil {
		return 0, err
	}
	o.ID = r.s.nextID()
	o.Items = nil
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	r.s.orders[o.ID] = o
	return o.ID, nil
}

func (r *MemOrders) FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id int, tenantID domain.TenantID) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return nil, err
	}
	r.s.lockLog = append(r.s.lockLog, fmt.Sprintf("order:%d", id))
	o, ok := r.s.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	return &o, nil
}

func (r *MemOrders) UpdateStatus(ctx context.Context, tx mysql.Tx, id int, status domain.OrderStatus, trackingNumber *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return err
	}
	if err := r.s.failure("Orders.UpdateStatus"); err != nil {
		return err
	}
	o, ok := r.s.orders[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	o.Status = status
	if trackingNumber != nil {
		o.TrackingNumber = trackingNumber
	}
	o.UpdatedAt = time.Now()
	r.s.orders[id] = o
	return nil
}

func (r *MemOrders) FindByID(ctx context.Context, id int, tenantID domain.TenantID) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok || o.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	return &o, nil
}

func (r *MemOrders) FindAllByTenant(ctx context.Context, tenantID domain.TenantID) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Order
	for _, o := range r.s.orders {
		if o.TenantID == tenantID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Order items

type MemOrderItems struct{ s *MemStore }

func (s *MemStore) OrderItems() *MemOrderItems { return &MemOrderItems{s: s} }

func (r *MemOrderItems) Insert(ctx context.Context, tx mysql.Tx, item domain.OrderItem) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return 0, err
	}
	if err := r.s.failure("OrderItems.Insert"); err != nil {
		return 0, err
	}
	item.ID = r.s.nextID()
	r.s.items = append(r.s.items, item)
	return item.ID, nil
}

func (r *MemOrderItems) FindByOrderID(ctx context.Context, tx mysql.Tx, orderID int) ([]domain.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkTx(tx); err != nil {
		return nil, err
	}
	return r.s.itemsOf(orderID), nil
}

func (r *MemOrderItems) ListByOrderID(ctx context.Context, orderID int) ([]domain.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.itemsOf(orderID), nil
}

func (s *MemStore) itemsOf(orderID int) []domain.OrderItem {
	var out []domain.OrderItem
	for _, item := range s.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out
}
