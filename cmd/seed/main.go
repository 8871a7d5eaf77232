// Package main provides a CLI tool for applying the database schema and
// seeding demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
	"billdesk/internal/infrastructure/storage/postgres"
	"billdesk/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := applySchema(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}
	log.Info("schema applied")

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
		log.Info("demo data seeded")
	}

	log.Info("seeding completed successfully")
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sys_sequences (
		key         TEXT PRIMARY KEY,
		current_val BIGINT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS cat_vendors (
		id            UUID PRIMARY KEY,
		code          TEXT NOT NULL,
		name          TEXT NOT NULL,
		phone         TEXT,
		email         TEXT,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INT NOT NULL DEFAULT 1
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_vendors_code ON cat_vendors (code) WHERE deletion_mark = FALSE`,

	`CREATE TABLE IF NOT EXISTS cat_items (
		id                    UUID PRIMARY KEY,
		code                  TEXT NOT NULL,
		name                  TEXT NOT NULL,
		price                 NUMERIC(15,2) NOT NULL DEFAULT 0,
		gst                   NUMERIC(5,2) NOT NULL DEFAULT 0,
		stock                 INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
		vendor_id             UUID NOT NULL REFERENCES cat_vendors(id),
		category              TEXT NOT NULL DEFAULT '',
		photo                 TEXT NOT NULL DEFAULT '',
		commission_applicable BOOLEAN NOT NULL DEFAULT FALSE,
		commission_rate       NUMERIC(5,2) NOT NULL DEFAULT 0,
		deletion_mark         BOOLEAN NOT NULL DEFAULT FALSE,
		version               INT NOT NULL DEFAULT 1
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_items_code ON cat_items (code) WHERE deletion_mark = FALSE`,
	`CREATE INDEX IF NOT EXISTS ix_cat_items_vendor ON cat_items (vendor_id)`,
	`CREATE INDEX IF NOT EXISTS ix_cat_items_category ON cat_items (category)`,

	`CREATE TABLE IF NOT EXISTS cat_customers (
		id            UUID PRIMARY KEY,
		code          TEXT NOT NULL,
		name          TEXT NOT NULL,
		phone         TEXT NOT NULL,
		address       TEXT NOT NULL DEFAULT '',
		email         TEXT,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INT NOT NULL DEFAULT 1
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_customers_code ON cat_customers (code) WHERE deletion_mark = FALSE`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_customers_phone ON cat_customers (phone) WHERE deletion_mark = FALSE`,

	`CREATE TABLE IF NOT EXISTS cat_agents (
		id            UUID PRIMARY KEY,
		code          TEXT NOT NULL,
		name          TEXT NOT NULL,
		phone         TEXT,
		email         TEXT,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INT NOT NULL DEFAULT 1
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_agents_code ON cat_agents (code) WHERE deletion_mark = FALSE`,

	`CREATE TABLE IF NOT EXISTS cat_employees (
		id            UUID PRIMARY KEY,
		code          TEXT NOT NULL,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'employee',
		phone         TEXT,
		address       TEXT,
		photo         TEXT,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INT NOT NULL DEFAULT 1
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_employees_code ON cat_employees (code) WHERE deletion_mark = FALSE`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_employees_email ON cat_employees (email) WHERE deletion_mark = FALSE`,

	`CREATE TABLE IF NOT EXISTS doc_bills (
		id                    UUID PRIMARY KEY,
		number                TEXT NOT NULL,
		date                  TIMESTAMPTZ NOT NULL,
		comment               TEXT NOT NULL DEFAULT '',
		customer_id           UUID NOT NULL REFERENCES cat_customers(id),
		created_by            UUID NOT NULL REFERENCES cat_employees(id),
		agent_id              UUID REFERENCES cat_agents(id),
		subtotal              NUMERIC(15,2) NOT NULL DEFAULT 0,
		gst_amount            NUMERIC(15,2) NOT NULL DEFAULT 0,
		total                 NUMERIC(15,2) NOT NULL DEFAULT 0,
		status                TEXT NOT NULL DEFAULT 'pending',
		payment_mode          TEXT,
		paid_amount           NUMERIC(15,2) NOT NULL DEFAULT 0,
		agent_commission      NUMERIC(15,2) NOT NULL DEFAULT 0,
		extra_amount_paid     NUMERIC(15,2) NOT NULL DEFAULT 0,
		from_exchange_request UUID,
		deletion_mark         BOOLEAN NOT NULL DEFAULT FALSE,
		version               INT NOT NULL DEFAULT 1,
		created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_doc_bills_number ON doc_bills (number) WHERE deletion_mark = FALSE`,
	`CREATE INDEX IF NOT EXISTS ix_doc_bills_customer ON doc_bills (customer_id)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_bills_status ON doc_bills (status)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_bills_date ON doc_bills (date)`,

	`CREATE TABLE IF NOT EXISTS doc_bill_lines (
		line_id    UUID PRIMARY KEY,
		bill_id    UUID NOT NULL REFERENCES doc_bills(id) ON DELETE CASCADE,
		line_no    INT NOT NULL,
		item_id    UUID NOT NULL REFERENCES cat_items(id),
		name       TEXT NOT NULL,
		quantity   INT NOT NULL CHECK (quantity > 0),
		price      NUMERIC(15,2) NOT NULL,
		gst        NUMERIC(5,2) NOT NULL,
		line_total NUMERIC(15,2) NOT NULL,
		line_gst   NUMERIC(15,2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_bill_lines_bill ON doc_bill_lines (bill_id)`,

	`CREATE TABLE IF NOT EXISTS doc_bill_exchange_history (
		bill_id       UUID NOT NULL REFERENCES doc_bills(id) ON DELETE CASCADE,
		original_item UUID NOT NULL,
		new_item      UUID NOT NULL,
		date          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_bill_exchange_history_bill ON doc_bill_exchange_history (bill_id)`,

	`CREATE TABLE IF NOT EXISTS doc_return_exchange_requests (
		id               UUID PRIMARY KEY,
		number           TEXT NOT NULL,
		date             TIMESTAMPTZ NOT NULL,
		comment          TEXT NOT NULL DEFAULT '',
		type             TEXT NOT NULL,
		bill_id          UUID NOT NULL REFERENCES doc_bills(id),
		customer_id      UUID NOT NULL REFERENCES cat_customers(id),
		created_by       UUID NOT NULL REFERENCES cat_employees(id),
		status           TEXT NOT NULL DEFAULT 'pending',
		exchange_bill_id UUID,
		deletion_mark    BOOLEAN NOT NULL DEFAULT FALSE,
		version          INT NOT NULL DEFAULT 1,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_doc_return_exchange_requests_number ON doc_return_exchange_requests (number) WHERE deletion_mark = FALSE`,
	`CREATE INDEX IF NOT EXISTS ix_doc_return_exchange_requests_status ON doc_return_exchange_requests (status)`,

	`CREATE TABLE IF NOT EXISTS doc_return_exchange_items (
		request_id UUID NOT NULL REFERENCES doc_return_exchange_requests(id) ON DELETE CASCADE,
		kind       TEXT NOT NULL CHECK (kind IN ('original', 'exchange')),
		line_no    INT NOT NULL,
		item_id    UUID NOT NULL REFERENCES cat_items(id),
		quantity   INT NOT NULL CHECK (quantity > 0)
	)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_return_exchange_items_request ON doc_return_exchange_items (request_id)`,

	`CREATE TABLE IF NOT EXISTS doc_return_exchange_responses (
		request_id    UUID PRIMARY KEY REFERENCES doc_return_exchange_requests(id) ON DELETE CASCADE,
		note          TEXT NOT NULL DEFAULT '',
		response_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func applySchema(ctx context.Context, pool *postgres.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply statement: %w", err)
		}
	}
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	// 1. Vendors
	type vendorSeed struct {
		code  string
		name  string
		phone string
	}

	vendors := []vendorSeed{
		{"VND-2026-00001", "Metro Textiles", "9810000001"},
		{"VND-2026-00002", "Sunrise Apparel", "9810000002"},
	}

	vendorIDs := make(map[string]id.ID)
	for _, v := range vendors {
		vid := id.New()
		tag, err := pool.Exec(ctx, `
			INSERT INTO cat_vendors (id, code, name, phone, deletion_mark, version)
			VALUES ($1, $2, $3, $4, false, 1)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, vid, v.code, v.name, v.phone)
		if err != nil {
			return fmt.Errorf("seed vendor %s: %w", v.name, err)
		}
		if tag.RowsAffected() == 0 {
			if err := pool.QueryRow(ctx,
				`SELECT id FROM cat_vendors WHERE code = $1 AND deletion_mark = FALSE`,
				v.code).Scan(&vid); err != nil {
				return fmt.Errorf("fetch vendor %s: %w", v.code, err)
			}
		}
		vendorIDs[v.code] = vid
	}

	// 2. Items
	type itemSeed struct {
		code       string
		name       string
		price      string
		gst        string
		stock      int
		vendorCode string
		category   string
		commission bool
	}

	items := []itemSeed{
		{"ITM-2026-00001", "Cotton Shirt", "499.00", "5", 120, "VND-2026-00001", "apparel", true},
		{"ITM-2026-00002", "Denim Jeans", "1299.00", "12", 80, "VND-2026-00001", "apparel", true},
		{"ITM-2026-00003", "Leather Belt", "349.00", "18", 60, "VND-2026-00002", "accessories", false},
		{"ITM-2026-00004", "Winter Jacket", "2499.00", "18", 25, "VND-2026-00002", "apparel", true},
	}

	for _, it := range items {
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_items (
				id, code, name, price, gst, stock, vendor_id,
				category, commission_applicable, deletion_mark, version
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, 1)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), it.code, it.name, types.MustMoney(it.price), types.MustMoney(it.gst),
			it.stock, vendorIDs[it.vendorCode], it.category, it.commission)
		if err != nil {
			return fmt.Errorf("seed item %s: %w", it.name, err)
		}
	}

	// 3. Customers
	customers := []struct {
		code    string
		name    string
		phone   string
		address string
	}{
		{"CST-2026-00001", "Asha Verma", "9900000001", "12 MG Road"},
		{"CST-2026-00002", "Rahul Nair", "9900000002", "4 Park Street"},
	}

	for _, c := range customers {
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_customers (id, code, name, phone, address, deletion_mark, version)
			VALUES ($1, $2, $3, $4, $5, false, 1)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), c.code, c.name, c.phone, c.address)
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", c.name, err)
		}
	}

	// 4. Agents
	_, err := pool.Exec(ctx, `
		INSERT INTO cat_agents (id, code, name, phone, deletion_mark, version)
		VALUES ($1, $2, $3, $4, false, 1)
		ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
	`, id.New(), "AGT-2026-00001", "Vikram Sales", "9700000001")
	if err != nil {
		return fmt.Errorf("seed agent: %w", err)
	}

	// 5. Employees
	employees := []struct {
		code  string
		name  string
		email string
		role  string
	}{
		{"EMP-2026-00001", "Store Admin", "admin@billdesk.local", "admin"},
		{"EMP-2026-00002", "Counter Staff", "staff@billdesk.local", "employee"},
	}

	for _, e := range employees {
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_employees (id, code, name, email, role, deletion_mark, version)
			VALUES ($1, $2, $3, $4, $5, false, 1)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), e.code, e.name, e.email, e.role)
		if err != nil {
			return fmt.Errorf("seed employee %s: %w", e.name, err)
		}
	}

	log.Infow("seeded demo catalog data",
		"vendors", len(vendors),
		"items", len(items),
		"customers", len(customers),
		"employees", len(employees),
	)

	return nil
}
