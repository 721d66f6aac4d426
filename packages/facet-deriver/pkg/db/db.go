package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB wraps a gorm database handle.
type DB struct {
	gormdb *gorm.DB
}

// Config contains all configs used to open a MySQL connection.
type Config struct {
	Host            string
	Name            string
	User            string
	Password        string
	MaxIdleConns    uint64
	MaxOpenConns    uint64
	ConnMaxLifetime uint64
}

func New(gormdb *gorm.DB) *DB {
	return &DB{gormdb: gormdb}
}

func (db *DB) DB() (*sql.DB, error) {
	return db.gormdb.DB()
}

func (db *DB) GormDB() *gorm.DB {
	return db.gormdb
}

// DSN returns the MySQL data source name of the config.
func (cfg *Config) DSN() string {
	return fmt.Sprintf(
		"%v:%v@tcp(%v)/%v?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Name,
	)
}

// OpenMySQL opens a MySQL connection pool with the given config.
func OpenMySQL(cfg *Config) (*DB, error) {
	gormdb, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormdb.DB()
	if err != nil {
		return nil, err
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(int(cfg.MaxIdleConns))
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(int(cfg.MaxOpenConns))
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	return New(gormdb), nil
}

// Migrate applies all pending schema migrations.
func Migrate(ctx context.Context, db *DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return err
	}

	return goose.UpContext(ctx, sqlDB, "migrations")
}
