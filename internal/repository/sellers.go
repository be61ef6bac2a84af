package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/sellerhub/market-mock-api/internal/model"
)

type SellersRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*model.Seller, error)
}

type SellersRepositoryImpl struct {
	db *sqlx.DB
}

func NewSellersRepository(db *sqlx.DB) *SellersRepositoryImpl {
	return &SellersRepositoryImpl{db: db}
}

var _ SellersRepository = (*SellersRepositoryImpl)(nil)

func (r *SellersRepositoryImpl) GetByAPIKey(ctx context.Context, apiKey string) (*model.Seller, error) {
	var s model.Seller
	err := r.db.GetContext(ctx, &s, `
		SELECT api_client_id, seller_id, seller_name, api_key, platform,
		       rate_limit_per_min, is_active, created_at, updated_at
		  FROM mock_api_clients
		 WHERE api_key = ? LIMIT 1
	`, apiKey)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
