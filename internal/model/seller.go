package model

import "time"

// Seller is the DB entity for the mock_api_clients table: one API key per
// seller, scoped to a single platform.
type Seller struct {
	APIClientID     int64     `db:"api_client_id"`
	SellerID        int64     `db:"seller_id"`
	SellerName      *string   `db:"seller_name"` // nullable
	APIKey          string    `db:"api_key"`
	Platform        Platform  `db:"platform"`
	RateLimitPerMin int       `db:"rate_limit_per_min"` // <=0 falls back to the configured default
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}
