package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sellerhub/market-mock-api/internal/config"
	"github.com/sellerhub/market-mock-api/internal/db"
	"github.com/sellerhub/market-mock-api/internal/kafka"
	"github.com/sellerhub/market-mock-api/internal/logger"
	"github.com/sellerhub/market-mock-api/internal/mockgen"
	"github.com/sellerhub/market-mock-api/internal/repository"
)

var (
	genMode string
	genSeed int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate mock market orders (initial | hourly-insert | hourly-update)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger.Init(cfg.Log.Level)
		defer logger.Sync()

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

		var pub mockgen.EventPublisher
		if len(cfg.Kafka.Brokers) > 0 {
			p := kafka.NewPublisherFromConfig(kafka.Config{
				Brokers:      cfg.Kafka.Brokers,
				Topic:        cfg.Kafka.Topic,
				BatchTimeout: cfg.Kafka.BatchTimeout,
				WriteTimeout: cfg.Kafka.WriteTimeout,
			})
			defer func() { _ = p.Close() }()
			pub = p
		}

		ordersRepo := repository.NewOrdersRepository(sqlDB)
		gen := mockgen.New(ordersRepo, pub, genSeed, logger.Log)

		ctx := context.Background()

		switch genMode {
		case "initial":
			start, err := time.ParseInLocation("2006-01-02", cfg.Mock.InitialStartDate, time.UTC)
			if err != nil {
				return fmt.Errorf("parse mock.initial_start_date: %w", err)
			}
			end, err := time.ParseInLocation("2006-01-02", cfg.Mock.InitialEndDate, time.UTC)
			if err != nil {
				return fmt.Errorf("parse mock.initial_end_date: %w", err)
			}
			count, err := gen.GenerateInitial(ctx, start, end, cfg.Mock.OrdersPerHourPerPlatform)
			if err != nil {
				return err
			}
			fmt.Printf("Inserted %d mock orders (initial).\n", count)
		case "hourly-insert":
			count, err := gen.GenerateHourly(ctx, time.Time{}, cfg.Mock.OrdersPerHourPerPlatform)
			if err != nil {
				return err
			}
			fmt.Printf("Inserted %d mock orders for the last hour.\n", count)
		case "hourly-update":
			updated, err := gen.ProgressStatuses(ctx, 200)
			if err != nil {
				return err
			}
			fmt.Printf("Updated %d orders status.\n", updated)
		default:
			return fmt.Errorf("unknown mode %q (want initial | hourly-insert | hourly-update)", genMode)
		}

		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&genMode, "mode", "", "generation mode: initial | hourly-insert | hourly-update")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "deterministic RNG seed (0 = time-based)")
	_ = generateCmd.MarkFlagRequired("mode")
}
