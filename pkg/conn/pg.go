// Package conn dials the PostgreSQL pool backing database-backed audit
// storage.
package conn

import (
	"fmt"
	"strings"

	"github.com/yanun0323/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Option carries PostgreSQL connection settings. Zero values fall back
// to local defaults.
type Option struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// Open dials PostgreSQL and returns the gorm handle. The gorm logger is
// silenced so query noise stays out of the desk log.
func Open(opt Option) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(opt.dsn()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "dialing postgres "+opt.Database)
	}
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (opt Option) dsn() string {
	if opt.Host == "" {
		opt.Host = "localhost"
	}
	if opt.Port == 0 {
		opt.Port = 5432
	}
	if opt.SSLMode == "" {
		opt.SSLMode = "disable"
	}

	parts := []string{
		"host=" + opt.Host,
		fmt.Sprintf("port=%d", opt.Port),
		"sslmode=" + opt.SSLMode,
	}
	if opt.User != "" {
		parts = append(parts, "user="+opt.User)
	}
	if opt.Password != "" {
		parts = append(parts, "password="+opt.Password)
	}
	if opt.Database != "" {
		parts = append(parts, "dbname="+opt.Database)
	}
	return strings.Join(parts, " ")
}
