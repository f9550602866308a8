// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/your-org/delivery-backend/internal/domain/merchant"
	"github.com/your-org/delivery-backend/internal/domain/order"
	"github.com/your-org/delivery-backend/internal/domain/product"
	"github.com/your-org/delivery-backend/internal/domain/store"
	"github.com/your-org/delivery-backend/internal/domain/upload"
	"github.com/your-org/delivery-backend/internal/pkg/pricing"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: stores first, then the catalog, then orders
	models := []interface{}{
		&store.Store{},
		&merchant.Merchant{},

		&product.Category{},
		&product.Product{},
		&product.Ingredient{},
		&product.Addon{},

		&order.Order{},
		&order.OrderItem{},

		&upload.Asset{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Store indexes
		"CREATE INDEX IF NOT EXISTS idx_stores_slug_active ON stores(slug, accepting_orders)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_store_active ON products(store_slug, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_ingredients_product ON ingredients(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_addons_product_active ON addons(product_id, is_active)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_store_status ON orders(store_slug, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		// Merchant indexes
		"CREATE INDEX IF NOT EXISTS idx_merchants_email_active ON merchants(email, is_active)",

		// Asset indexes
		"CREATE INDEX IF NOT EXISTS idx_assets_store_kind ON assets(store_slug, kind)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts development data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedDemoStore(); err != nil {
		return fmt.Errorf("failed to seed demo store: %w", err)
	}

	if err := m.seedDemoMerchant(); err != nil {
		return fmt.Errorf("failed to seed demo merchant: %w", err)
	}

	if err := m.seedDemoProducts(); err != nil {
		return fmt.Errorf("failed to seed demo products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedDemoStore() error {
	log.Println("🏪 Seeding demo store...")

	var existing store.Store
	result := m.db.Where("slug = ?", "pizzaria-do-bairro").First(&existing)
	if result.Error == nil {
		log.Println("⏭️ Demo store already exists")
		return nil
	}

	demo := store.Store{
		ID:                    uuid.New().String(),
		Slug:                  "pizzaria-do-bairro",
		Name:                  "Pizzaria do Bairro",
		Description:           "Pizzas artesanais no forno a lenha",
		Phone:                 "11999990000",
		DeliveryFee:           7,
		FreeDeliveryThreshold: 100,
		MinimumOrder:          25,
		EstimatedDeliveryTime: "40-50 min",
		AcceptingOrders:       true,
	}
	if err := m.db.Create(&demo).Error; err != nil {
		return err
	}

	log.Printf("✅ Created demo store: %s", demo.Name)
	return nil
}

func (m *Migration) seedDemoMerchant() error {
	log.Println("👤 Seeding demo merchant...")

	var existing merchant.Merchant
	result := m.db.Where("email = ?", "dono@pizzaria.example.com").First(&existing)
	if result.Error == nil {
		log.Println("⏭️ Demo merchant already exists")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("pizzaria123"), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	demo := merchant.Merchant{
		ID:        uuid.New().String(),
		StoreSlug: "pizzaria-do-bairro",
		Email:     "dono@pizzaria.example.com",
		Password:  string(hashedPassword),
		Name:      "Dono da Pizzaria",
		IsActive:  true,
	}
	if err := m.db.Create(&demo).Error; err != nil {
		return err
	}

	log.Println("✅ Created demo merchant: dono@pizzaria.example.com (password: pizzaria123)")
	return nil
}

func (m *Migration) seedDemoProducts() error {
	log.Println("🍕 Seeding demo products...")

	var productCount int64
	m.db.Model(&product.Product{}).Where("store_slug = ?", "pizzaria-do-bairro").Count(&productCount)
	if productCount > 0 {
		log.Println("⏭️ Demo products already exist")
		return nil
	}

	category := product.Category{
		ID:        uuid.New().String(),
		StoreSlug: "pizzaria-do-bairro",
		Name:      "Pizzas",
		SortOrder: 1,
		IsActive:  true,
	}
	if err := m.db.Create(&category).Error; err != nil {
		return err
	}

	margherita := product.Product{
		ID:          uuid.New().String(),
		StoreSlug:   "pizzaria-do-bairro",
		CategoryID:  &category.ID,
		Name:        "Pizza Margherita",
		Description: "Molho de tomate, mussarela e manjericão fresco",
		Price:       pricing.Price(42.90),
		IsActive:    true,
		Ingredients: []product.Ingredient{
			{ID: uuid.New().String(), Name: "Mussarela", Included: true, Removable: false},
			{ID: uuid.New().String(), Name: "Tomate", Included: true, Removable: true},
			{ID: uuid.New().String(), Name: "Manjericão", Included: false, Removable: false},
		},
		Addons: []product.Addon{
			{ID: uuid.New().String(), Name: "Borda Recheada", Price: pricing.Price(8), MaxQuantity: 1, IsActive: true},
			{ID: uuid.New().String(), Name: "Extra Queijo", Price: pricing.Price(5), MaxQuantity: 3, IsActive: true},
		},
	}
	if err := m.db.Create(&margherita).Error; err != nil {
		return err
	}

	calabresa := product.Product{
		ID:          uuid.New().String(),
		StoreSlug:   "pizzaria-do-bairro",
		CategoryID:  &category.ID,
		Name:        "Pizza Calabresa",
		Description: "Calabresa fatiada, cebola e azeitonas",
		Price:       pricing.Price(39.90),
		IsActive:    true,
		Ingredients: []product.Ingredient{
			{ID: uuid.New().String(), Name: "Calabresa", Included: true, Removable: false},
			{ID: uuid.New().String(), Name: "Cebola", Included: true, Removable: true},
			{ID: uuid.New().String(), Name: "Azeitonas", Included: true, Removable: true},
		},
		Addons: []product.Addon{
			{ID: uuid.New().String(), Name: "Borda Recheada", Price: pricing.Price(8), MaxQuantity: 1, IsActive: true},
		},
	}
	if err := m.db.Create(&calabresa).Error; err != nil {
		return err
	}

	log.Println("✅ Created demo products")
	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"order_items",
		"orders",
		"addons",
		"ingredients",
		"products",
		"categories",
		"assets",
		"merchants",
		"stores",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}

// GetTableInfo returns information about database tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}

		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", len(tables))

	return nil
}
