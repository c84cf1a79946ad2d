package database

import (
	"database/sql"
	"log/slog"
)

// RunMigrations bootstraps the schema. Every statement is idempotent so the
// server can run this on every start.
func RunMigrations(db *sql.DB) error {
	slog.Info("running database migrations")

	tables := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE TABLE IF NOT EXISTS streets (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS residents (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL,
			email VARCHAR(255),
			phone VARCHAR(20),
			comments TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS properties (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			community VARCHAR(255) NOT NULL,
			street_id UUID NOT NULL REFERENCES streets(id),
			street_number VARCHAR(20) NOT NULL,
			type VARCHAR(10) NOT NULL DEFAULT 'house',
			resident_id UUID REFERENCES residents(id) ON DELETE SET NULL,
			comments TEXT,
			overdue_months INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE,
			deletion_reason TEXT,
			deleted_by UUID
		)`,
		`CREATE TABLE IF NOT EXISTS fees (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			description TEXT,
			amount NUMERIC(12,2) NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE,
			deletion_reason TEXT,
			deleted_by UUID
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			property_id UUID NOT NULL REFERENCES properties(id),
			fee_id UUID NOT NULL REFERENCES fees(id),
			month INT NOT NULL CHECK (month BETWEEN 1 AND 12),
			year INT NOT NULL,
			payment_date DATE NOT NULL,
			amount_paid NUMERIC(12,2) NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'paid',
			cancellation_reason TEXT,
			cancelled_at TIMESTAMP WITH TIME ZONE,
			cancelled_by UUID,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			category_id UUID NOT NULL REFERENCES categories(id),
			title VARCHAR(255) NOT NULL,
			amount NUMERIC(12,2) NOT NULL,
			date DATE NOT NULL,
			notes TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE,
			deletion_reason TEXT,
			deleted_by UUID
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(255) NOT NULL,
			last_name VARCHAR(255) NOT NULL,
			phone VARCHAR(20),
			property_id UUID REFERENCES properties(id) ON DELETE SET NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS permissions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS role_permissions (
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			permission_id UUID NOT NULL REFERENCES permissions(id) ON DELETE CASCADE,
			PRIMARY KEY (role_id, permission_id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			sender_id UUID NOT NULL REFERENCES users(id),
			recipient_id UUID NOT NULL REFERENCES users(id),
			subject VARCHAR(255),
			body TEXT NOT NULL,
			read_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS announcements (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title VARCHAR(255) NOT NULL,
			body TEXT NOT NULL,
			starts_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			author_id UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			deleted_at TIMESTAMP WITH TIME ZONE
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key VARCHAR(255) PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
	}

	for _, q := range tables {
		if _, err := db.Exec(q); err != nil {
			slog.Error("migration failed", "error", err)
			return err
		}
	}

	indexes := []string{
		// One active ledger entry per (property, fee, month, year). This is
		// the constraint that closes the concurrent-registration race; the
		// write path additionally relies on ON CONFLICT against it.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_payments_active_period
			ON payments (property_id, fee_id, month, year)
			WHERE status <> 'cancelled' AND deleted_at IS NULL`,
		// One live property per (community, street, number).
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_properties_address
			ON properties (community, street_id, street_number)
			WHERE deleted_at IS NULL`,
		// One active fee per name.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_fees_active_name
			ON fees (name)
			WHERE is_active = true AND deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_payments_property_year ON payments(property_id, year)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_payment_date ON payments(payment_date)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_recipient ON messages(recipient_id, read_at)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
	}

	for _, q := range indexes {
		if _, err := db.Exec(q); err != nil {
			slog.Error("index migration failed", "error", err)
			return err
		}
	}

	seeds := []string{
		`INSERT INTO roles (name) VALUES ('admin') ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO permissions (name) VALUES
			('payments.register'), ('payments.cancel'), ('payments.update'),
			('properties.manage'), ('residents.manage'), ('streets.manage'),
			('fees.manage'), ('expenses.manage'), ('users.manage'),
			('reports.view'), ('announcements.manage'), ('settings.manage')
			ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO role_permissions (role_id, permission_id)
			SELECT r.id, p.id FROM roles r CROSS JOIN permissions p
			WHERE r.name = 'admin'
			ON CONFLICT DO NOTHING`,
		`INSERT INTO categories (name, is_active) VALUES ('Maintenance', true) ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO settings (key, value) VALUES ('currency', 'MXN') ON CONFLICT (key) DO NOTHING`,
	}

	for _, q := range seeds {
		if _, err := db.Exec(q); err != nil {
			slog.Warn("seed failed", "error", err)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
