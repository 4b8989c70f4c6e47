package prefs

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"domain_expiry/internal/model"
)

// GormProvider stores preferences as one JSON row per client
type GormProvider struct {
	db *gorm.DB
}

// NewGormProvider creates a provider on a migrated database
func NewGormProvider(db *gorm.DB) *GormProvider {
	return &GormProvider{db: db}
}

// Store returns the store of clientID
func (p *GormProvider) Store(clientID string) Store {
	return &gormStore{db: p.db, clientID: clientID}
}

// Close closes the underlying connection pool
func (p *GormProvider) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormStore struct {
	db       *gorm.DB
	clientID string
}

func (s *gormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var row model.ClientPreference
	err := s.db.WithContext(ctx).Where("client_id = ?", s.clientID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query preferences: %w", err)
	}

	raw, ok := row.Values[key]
	if !ok {
		return "", false, nil
	}
	v, ok := raw.(string)
	if !ok {
		return fmt.Sprint(raw), true, nil
	}
	return v, true, nil
}

func (s *gormStore) Set(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.ClientPreference
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("client_id = ?", s.clientID).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = model.ClientPreference{
				ClientID: s.clientID,
				Values:   datatypes.JSONMap{key: value},
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create preferences: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to query preferences: %w", err)
		}

		if row.Values == nil {
			row.Values = datatypes.JSONMap{}
		}
		row.Values[key] = value
		if err := tx.Model(&row).Update("prefs", row.Values).Error; err != nil {
			return fmt.Errorf("failed to update preferences: %w", err)
		}
		return nil
	})
}
