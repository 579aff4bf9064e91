package postgres

import "time"

// RateRecord is the latest normalized rate for one currency pair. The
// table is a live view, not a history: one row per source and pair,
// overwritten on every update.
type RateRecord struct {
	ID uint `gorm:"primaryKey"`

	// unique index
	Source string `gorm:"type:text;not null;index:idx_rate_source_pair,unique"`
	Pair   string `gorm:"type:text;not null;index:idx_rate_source_pair,unique"`

	FromAsset string `gorm:"column:from_asset;type:text;not null"`
	ToAsset   string `gorm:"column:to_asset;type:text;not null"`

	Buy  float64 `gorm:"type:numeric;not null"`
	Sell float64 `gorm:"type:numeric;not null"`

	UpdatedAt time.Time `gorm:"not null;index:idx_rate_updated_at"`
}

// TableName overrides the default table name for GORM.
func (RateRecord) TableName() string {
	return "rate_record"
}
