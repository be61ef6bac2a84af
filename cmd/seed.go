package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/sellerhub/market-mock-api/internal/config"
	"github.com/sellerhub/market-mock-api/internal/db"
	"github.com/sellerhub/market-mock-api/internal/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo seller API clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1) load config
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// 2) connect MySQL
		sqlDB, err := db.NewMySQLConnection(cfg.MySQL.DSN, db.MySQLOpts{
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
			PingTimeout:     cfg.MySQL.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		log.Println(">> Seeding demo sellers...")

		if err := seedSellers(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seed completed ✅")
		return nil
	},
}

// seedSellers inserts deterministic demo API clients (idempotent). Two
// active sellers per platform plus one suspended seller for auth tests.
func seedSellers(dbx *sqlx.DB) error {
	sellers := []model.Seller{
		{SellerID: 1, SellerName: strptr("위시어스"), APIKey: "SMARTSTORE-KEY-0001", Platform: model.PlatformSmartstore, RateLimitPerMin: 60, IsActive: true},
		{SellerID: 2, SellerName: strptr("팔랑샵"), APIKey: "SMARTSTORE-KEY-0002", Platform: model.PlatformSmartstore, RateLimitPerMin: 120, IsActive: true},
		{SellerID: 3, SellerName: strptr("데일리룩"), APIKey: "COUPANG-KEY-0003", Platform: model.PlatformCoupang, RateLimitPerMin: 60, IsActive: true},
		{SellerID: 4, SellerName: strptr("커피굿즈샵"), APIKey: "COUPANG-KEY-0004", Platform: model.PlatformCoupang, RateLimitPerMin: 30, IsActive: true},
		{SellerID: 5, SellerName: strptr("위시어스"), APIKey: "ZIGZAG-KEY-0005", Platform: model.PlatformZigzag, RateLimitPerMin: 60, IsActive: true},
		{SellerID: 6, SellerName: strptr("팔랑샵"), APIKey: "ZIGZAG-KEY-0006", Platform: model.PlatformZigzag, RateLimitPerMin: 10, IsActive: true},
		{SellerID: 7, SellerName: strptr("데일리룩"), APIKey: "ABLY-KEY-0007", Platform: model.PlatformAbly, RateLimitPerMin: 60, IsActive: true},
		{SellerID: 8, SellerName: strptr("커피굿즈샵"), APIKey: "ABLY-KEY-0008", Platform: model.PlatformAbly, RateLimitPerMin: 60, IsActive: true},
		{SellerID: 9, SellerName: strptr("정지된셀러"), APIKey: "SMARTSTORE-KEY-0009", Platform: model.PlatformSmartstore, RateLimitPerMin: 60, IsActive: false},
	}

	// idempotent upsert based on api_key (UNIQUE)
	const q = `
INSERT INTO mock_api_clients
    (seller_id, seller_name, api_key, platform, rate_limit_per_min, is_active, created_at, updated_at)
VALUES
    (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
    seller_id          = VALUES(seller_id),
    seller_name        = VALUES(seller_name),
    platform           = VALUES(platform),
    rate_limit_per_min = VALUES(rate_limit_per_min),
    is_active          = VALUES(is_active),
    updated_at         = VALUES(updated_at)
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now()
	for _, s := range sellers {
		if _, err := tx.Exec(q, s.SellerID, s.SellerName, s.APIKey, s.Platform.String(), s.RateLimitPerMin, s.IsActive, now, now); err != nil {
			return fmt.Errorf("insert seller %d: %w", s.SellerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sellers: %w", err)
	}
	return nil
}

func strptr(s string) *string { return &s }
