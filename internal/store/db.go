package store

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Alp4ka/rankpager"
	"github.com/Alp4ka/rankpager/internal/config"
	"github.com/Alp4ka/rankpager/internal/users"
)

// Store owns the database connection and exposes the executor the pagination
// core runs its queries through.
type Store struct {
	gorm     *gorm.DB
	executor rankpager.Executor
	close    func() error
}

// Open connects to the configured database. With the sqlx executor gorm
// shares the sqlx connection pool and is only used for migrations.
func Open(ctx context.Context, cfg config.DB) (*Store, error) {
	switch cfg.Executor {
	case "gorm":
		return openGORM(ctx, cfg)
	case "sqlx":
		return openSQLX(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported executor '%s'", cfg.Executor)
	}
}

func openGORM(ctx context.Context, cfg config.DB) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Dialect {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported dialect '%s'", cfg.Dialect)
	}

	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("connection pool: %w", err)
	}

	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &Store{
		gorm:     db,
		executor: rankpager.NewGORMExecutor(db),
		close:    sqlDB.Close,
	}, nil
}

func openSQLX(ctx context.Context, cfg config.DB) (*Store, error) {
	var driverName string
	switch cfg.Dialect {
	case "postgres":
		driverName = "pgx"
	case "mysql":
		driverName = "mysql"
	default:
		return nil, fmt.Errorf("unsupported dialect '%s'", cfg.Dialect)
	}

	db, err := sqlx.ConnectContext(ctx, driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	var dialector gorm.Dialector
	if cfg.Dialect == "postgres" {
		dialector = postgres.New(postgres.Config{Conn: db.DB})
	} else {
		dialector = mysql.New(mysql.Config{Conn: db.DB, SkipInitializeWithVersion: true})
	}

	gormDB, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("gorm over sqlx: %w", err)
	}

	return &Store{
		gorm:     gormDB,
		executor: rankpager.NewSQLExecutor(db),
		close:    db.Close,
	}, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Migrate creates or updates the tables served by the service.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.gorm.WithContext(ctx).AutoMigrate(&users.User{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}

// Executor returns the executor ranked queries run through.
func (s *Store) Executor() rankpager.Executor {
	return s.executor
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.gorm.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.close()
}
