// Package history persists computed estimates for aggregate reporting.
// The estimator itself stays pure; the store is an observer that must
// never fail a calculation.
package history

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// EstimateRecord is one persisted calculation result.
type EstimateRecord struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	ModelID      string  `gorm:"not null;index" json:"model_id"`
	TaskType     string  `gorm:"index" json:"task_type"`
	InputTokens  int     `gorm:"not null" json:"input_tokens"`
	OutputTokens int     `gorm:"not null" json:"output_tokens"`
	EnergyWh     float64 `gorm:"not null" json:"energy_wh"`
	WaterML      float64 `gorm:"not null" json:"water_ml"`
	CarbonG      float64 `gorm:"not null" json:"carbon_gco2e"`
	EcoScore     int     `gorm:"not null" json:"eco_score"`
	Multiplier   float64 `gorm:"not null;default:1" json:"energy_multiplier"`

	// Detail holds the full ImpactEstimate JSON for auditing.
	Detail datatypes.JSON `json:"detail,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

// Summary aggregates the stored history.
type Summary struct {
	Count        int64   `json:"count"`
	TotalEnergy  float64 `json:"total_energy_wh"`
	TotalWater   float64 `json:"total_water_ml"`
	TotalCarbon  float64 `json:"total_carbon_gco2e"`
	MeanEcoScore float64 `json:"mean_eco_score"`
}

// Store is a SQLite-backed history store.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// Open opens (creating if needed) the history database at path and
// migrates the schema.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.AutoMigrate(&EstimateRecord{}); err != nil {
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	logger.Info().Str("path", path).Msg("history store opened")
	return &Store{db: db, logger: logger}, nil
}

// Save persists one record. Failures are logged, not returned: history
// must never break an estimate response.
func (s *Store) Save(rec *EstimateRecord) {
	if err := s.db.Create(rec).Error; err != nil {
		s.logger.Warn().Err(err).Str("model_id", rec.ModelID).Msg("failed to record estimate history")
	}
}

// Recent returns the newest records, up to limit.
func (s *Store) Recent(limit int) ([]EstimateRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []EstimateRecord
	err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}

// Summarize aggregates counts, totals, and the mean eco-score across
// all stored records.
func (s *Store) Summarize() (*Summary, error) {
	var out Summary
	row := s.db.Model(&EstimateRecord{}).
		Select("COUNT(*), COALESCE(SUM(energy_wh),0), COALESCE(SUM(water_ml),0), COALESCE(SUM(carbon_g),0), COALESCE(AVG(eco_score),0)").
		Row()
	if err := row.Scan(&out.Count, &out.TotalEnergy, &out.TotalWater, &out.TotalCarbon, &out.MeanEcoScore); err != nil {
		return nil, fmt.Errorf("summarize history: %w", err)
	}
	return &out, nil
}
