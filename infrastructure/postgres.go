package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jobboard/domain"
)

// NewPostgresPool opens the pgx pool shared by the job store and gorm.
func NewPostgresPool(ctx context.Context, log *zap.Logger, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("Connected to PostgreSQL",
		zap.String("host", cfg.ConnConfig.Host),
		zap.String("database", cfg.ConnConfig.Database))
	return pool, nil
}

// NewGormDB layers gorm over the pool so both share connections.
func NewGormDB(pool *pgxpool.Pool) (*gorm.DB, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the companies and jobs tables.
func Migrate(ctx context.Context, log *zap.Logger, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&domain.Company{}, &domain.Job{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	log.Info("Database schema migrated")
	return nil
}

// Seed inserts demo companies and jobs into an empty database.
func Seed(ctx context.Context, log *zap.Logger, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Company{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count companies: %w", err)
	}
	if count > 0 {
		log.Info("Seed skipped, companies already present", zap.Int64("companies", count))
		return nil
	}

	companies := seedCompanies()
	if err := db.WithContext(ctx).Create(&companies).Error; err != nil {
		return fmt.Errorf("seed companies: %w", err)
	}

	log.Info("Seeded demo data", zap.Int("companies", len(companies)))
	return nil
}

func seedCompanies() []domain.Company {
	intPtr := func(v int) *int { return &v }
	strPtr := func(v string) *string { return &v }

	return []domain.Company{
		{
			Handle:       "anderson-arias-morrow",
			Name:         "Anderson, Arias and Morrow",
			Description:  "Somebody program how I. Face give away discussion view act inside.",
			NumEmployees: intPtr(245),
			LogoURL:      strPtr("/logos/logo3.png"),
			Jobs: []domain.Job{
				{Title: "Amusement park manager", Salary: intPtr(162000), Equity: strPtr("0")},
				{Title: "Engineer, broadcasting", Salary: intPtr(91000), Equity: strPtr("0.08")},
			},
		},
		{
			Handle:       "baker-santos",
			Name:         "Baker-Santos",
			Description:  "Compare certain use. Writer time lay word garden.",
			NumEmployees: intPtr(225),
			LogoURL:      strPtr("/logos/logo1.png"),
			Jobs: []domain.Job{
				{Title: "Accountant, chartered", Salary: intPtr(81000), Equity: strPtr("0.045")},
			},
		},
		{
			Handle:      "watson-davis",
			Name:        "Watson-Davis",
			Description: "Year join loss.",
			Jobs: []domain.Job{
				{Title: "Volunteer coordinator"},
			},
		},
	}
}
