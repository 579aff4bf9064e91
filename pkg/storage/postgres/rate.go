package postgres

import (
	"context"
	"time"

	"gateparser/internal/gate/ratebus"

	"gorm.io/gorm/clause"
)

// SaveRate stores the rate as the current row for its source and pair.
// It satisfies the storage.RateStore contract.
func (p *PostgresClient) SaveRate(ctx context.Context, source string, rate ratebus.Rate) error {
	return p.UpsertRate(ctx, ToRateRecord(source, rate))
}

// UpsertRate inserts the record, overwriting the previous rate of the
// same source and pair if one exists.
func (p *PostgresClient) UpsertRate(ctx context.Context, record *RateRecord) error {
	return p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "source"},
			{Name: "pair"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"from_asset", "to_asset", "buy", "sell", "updated_at",
		}),
	}).Create(record).Error
}

func (p *PostgresClient) GetRate(ctx context.Context, source, pair string) (*RateRecord, error) {
	var record RateRecord
	err := p.DB.WithContext(ctx).
		Where("source = ? AND pair = ?", source, pair).
		First(&record).Error

	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteStaleRates removes rows last refreshed before the cutoff. Pairs
// that stop trading would otherwise keep their final row forever.
func (p *PostgresClient) DeleteStaleRates(ctx context.Context, before time.Time) error {
	return p.DB.WithContext(ctx).
		Where("updated_at < ?", before).
		Delete(&RateRecord{}).Error
}

// ToRateRecord converts a published rate into its database row.
func ToRateRecord(source string, rate ratebus.Rate) *RateRecord {
	return &RateRecord{
		Source:    source,
		Pair:      rate.From + "_" + rate.To,
		FromAsset: rate.From,
		ToAsset:   rate.To,
		Buy:       rate.Buy,
		Sell:      rate.Sell,
	}
}
