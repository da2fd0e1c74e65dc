// Package store archives finished rounds in Postgres.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNoDSN = errors.New("store: empty DSN")

// RoundResult is one archived round.
type RoundResult struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MatchID       string    `gorm:"index;size:64;not null" json:"matchId"`
	Round         int       `gorm:"not null" json:"round"`
	Winner        string    `gorm:"size:16;not null" json:"winner"`
	Reason        string    `gorm:"size:32" json:"reason"`
	AttackerScore int       `json:"attackerScore"`
	DefenderScore int       `json:"defenderScore"`
	EndedAt       time.Time `gorm:"index" json:"endedAt"`
	CreatedAt     time.Time `json:"-"`
}

func (RoundResult) TableName() string { return "round_results" }

func (r *RoundResult) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Store struct {
	db *gorm.DB
}

// Open connects to Postgres and migrates the archive table.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, ErrNoDSN
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if err := db.AutoMigrate(&RoundResult{}); err != nil {
		return nil, fmt.Errorf("migrate archive: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) SaveRound(ctx context.Context, r *RoundResult) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("save round %s/%d: %w", r.MatchID, r.Round, err)
	}
	return nil
}

// RecentRounds returns up to limit rounds for a match, newest first.
func (s *Store) RecentRounds(ctx context.Context, matchID string, limit int) ([]RoundResult, error) {
	var out []RoundResult
	err := s.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("ended_at desc").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("recent rounds for %s: %w", matchID, err)
	}
	return out, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
