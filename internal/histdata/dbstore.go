package histdata

import (
	"strings"
	"time"

	"github.com/yanun0323/errors"
	"gorm.io/gorm"
)

// AuditRow is one persisted audit record in the audit_rows table.
type AuditRow struct {
	ID        uint64 `gorm:"primaryKey"`
	Kind      string `gorm:"index"`
	RecordKey string
	Payload   string
	CreatedAt time.Time
}

// DBStore appends audit records to PostgreSQL through gorm.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore migrates the audit table and returns a database-backed
// store.
func NewDBStore(db *gorm.DB) (*DBStore, error) {
	if err := db.AutoMigrate(&AuditRow{}); err != nil {
		return nil, errors.Wrap(err, "migrating audit table")
	}
	return &DBStore{db: db}, nil
}

// Append inserts one audit row.
func (s *DBStore) Append(kind Kind, key string, fields []string) error {
	row := AuditRow{
		Kind:      string(kind),
		RecordKey: key,
		Payload:   strings.Join(fields, ","),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return errors.Wrap(err, "inserting "+string(kind)+" audit row "+key)
	}
	return nil
}

// Close releases the connection pool.
func (s *DBStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
