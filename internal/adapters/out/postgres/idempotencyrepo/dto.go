// Package idempotencyrepo keeps creation outcomes keyed by client-chosen
// idempotency keys in the idempotency_records table.
package idempotencyrepo

import "time"

// RecordDTO is one cached creation outcome. Rows past ExpiresAt are invisible
// to lookups and removed by PurgeExpired.
type RecordDTO struct {
	Key        string    `gorm:"primaryKey"`
	Payload    []byte    `gorm:"type:bytea;not null"`
	StatusCode int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime:false"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

func (RecordDTO) TableName() string {
	return "idempotency_records"
}
