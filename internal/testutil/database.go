package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"sellerhub/internal/infrastructure/mysql"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/sellerhub_test?parseTime=true"

// SetupTestDB abre la BD de prueba indicada por TEST_DATABASE_DSN.
// Si no hay MySQL disponible el test se omite.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables crea el esquema de la aplicación.
func SetupTestTables(t *testing.T, db *sql.DB) {
	if err := mysql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// CleanupTestDB vacía las tablas en orden inverso a las claves foráneas.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	for i := len(mysql.SchemaStatements) - 1; i >= 0; i-- {
		table := mysql.SchemaStatements[i].Table
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// InsertOwner crea un usuario OWNER con ownerId apuntando a sí mismo.
func InsertOwner(t *testing.T, db *sql.DB, email string) int {
	result, err := db.Exec(`INSERT INTO Users (name, email, role) VALUES (?, ?, 'OWNER')`, email, email)
	if err != nil {
		t.Fatalf("inserting owner: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("reading owner id: %v", err)
	}
	if _, err := db.Exec(`UPDATE Users SET ownerId = ? WHERE id = ?`, id, id); err != nil {
		t.Fatalf("back-filling ownerId: %v", err)
	}
	return int(id)
}

func InsertEmployee(t *testing.T, db *sql.DB, email string, ownerID int) int {
	result, err := db.Exec(`INSERT INTO Users (name, email, role, ownerId) VALUES (?, ?, 'EMPLOYEE', ?)`, email, email, ownerID)
	if err != nil {
		t.Fatalf("inserting employee: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("reading employee id: %v", err)
	}
	return int(id)
}

func InsertProduct(t *testing.T, db *sql.DB, tenantID int, name string, sell, cost string, stock int) int {
	result, err := db.Exec(`
		INSERT INTO Products (userId, name, sellPrice, costPrice, stockQuantity)
		VALUES (?, ?, ?, ?, ?)`, tenantID, name, sell, cost, stock)
	if err != nil {
		t.Fatalf("inserting product: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("reading product id: %v", err)
	}
	return int(id)
}

func InsertCustomer(t *testing.T, db *sql.DB, tenantID int, name, phone string) int {
	result, err := db.Exec(`
		INSERT INTO Customers (userId, name, phone, city, address)
		VALUES (?, ?, ?, 'Lahore', 'Mall Road 1')`, tenantID, name, phone)
	if err != nil {
		t.Fatalf("inserting customer: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("reading customer id: %v", err)
	}
	return int(id)
}
