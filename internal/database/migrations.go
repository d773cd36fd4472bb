package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		avatar_url VARCHAR(500),
		provider VARCHAR(50) NOT NULL,
		provider_id VARCHAR(255) NOT NULL,
		global_role VARCHAR(50) NOT NULL DEFAULT 'user',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(provider, provider_id)
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,

	// Product catalog (physical sign products, separate from design templates)
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		slug VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		main_category VARCHAR(100) NOT NULL,
		sub_category VARCHAR(100),
		description TEXT NOT NULL DEFAULT '',
		image_url VARCHAR(500) NOT NULL DEFAULT '',
		price_cents INTEGER,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(main_category, sub_category)`,

	// Quote requests from the marketing site
	`CREATE TABLE IF NOT EXISTS quote_requests (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50),
		company VARCHAR(255),
		product VARCHAR(255),
		template_id VARCHAR(255),
		message TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'new',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_quote_requests_status ON quote_requests(status)`,

	// Customer designs started from a catalog template
	`CREATE TABLE IF NOT EXISTS designs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		template_id VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		width DOUBLE PRECISION NOT NULL,
		height DOUBLE PRECISION NOT NULL,
		document JSONB NOT NULL DEFAULT '{}',
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_designs_user_id ON designs(user_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
