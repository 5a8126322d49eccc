package mysql

// SchemaStatement creates one table. Statements are ordered so that every
// foreign key target exists before it is referenced.
type SchemaStatement struct {
	Table string
	Query string
}

var SchemaStatements = []SchemaStatement{
	{
		Table: "Users",
		Query: `
	CREATE TABLE IF NOT EXISTS Users (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		role ENUM('OWNER', 'EMPLOYEE') NOT NULL DEFAULT 'OWNER',
		ownerId INT NULL,
		lowStockThreshold INT NOT NULL DEFAULT 5,
		inactiveThreshold INT NOT NULL DEFAULT 30,
		vipOrderThreshold INT NOT NULL DEFAULT 5,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_owner (ownerId)
	)`,
	},
	{
		Table: "Products",
		Query: `
	CREATE TABLE IF NOT EXISTS Products (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		userId INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		costPrice DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		sellPrice DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		stockQuantity INT NOT NULL DEFAULT 0,
		isArchived TINYINT(1) NOT NULL DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT chk_stock_non_negative CHECK (stockQuantity >= 0),
		INDEX idx_tenant (userId)
	)`,
	},
	{
		Table: "Customers",
		Query: `
	CREATE TABLE IF NOT EXISTS Customers (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		userId INT NOT NULL,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(30) NOT NULL,
		city VARCHAR(100) NOT NULL,
		address VARCHAR(255) NOT NULL,
		totalOrders INT NOT NULL DEFAULT 0,
		totalSpent DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		lastOrderDate DATETIME NULL,
		favoriteItem VARCHAR(255) NULL,
		lastMarketingSentAt DATETIME NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_tenant_phone (userId, phone)
	)`,
	},
	{
		Table: "Orders",
		Query: `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		userId INT NOT NULL,
		customerId INT NOT NULL,
		status ENUM('NEW', 'PACKED', 'WITH_COURIER', 'DELIVERED', 'CANCELLED', 'RETURNED') NOT NULL DEFAULT 'NEW',
		totalAmount DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		totalProfit DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		trackingNumber VARCHAR(100) NULL,
		courierName VARCHAR(100) NOT NULL DEFAULT '',
		notes TEXT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (customerId) REFERENCES Customers(id),
		INDEX idx_tenant (userId)
	)`,
	},
	{
		Table: "OrderItems",
		Query: `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT NOT NULL,
		productId INT NOT NULL,
		quantity INT NOT NULL,
		priceAtPurchase DECIMAL(12,2) NOT NULL,
		costAtPurchase DECIMAL(12,2) NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		FOREIGN KEY (productId) REFERENCES Products(id) ON DELETE RESTRICT,
		INDEX idx_order (orderId),
		INDEX idx_product (productId)
	)`,
	},
}
