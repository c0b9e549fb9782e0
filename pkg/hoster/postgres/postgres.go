// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package postgres is the production HosterRegistry: gorm-backed
// persistence plus a short-TTL go-cache snapshot in front of
// ListByType, since the load-balanced dispatch endpoint (spec section
// 4.4) calls it on every poll from every idle crawler.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/repofleet/coordinator/pkg/hoster"
)

type hosterRow struct {
	Id             string `gorm:"primaryKey;column:id"`
	Type           string `gorm:"column:type;index"`
	LandingpageUrl string `gorm:"column:landingpage_url"`
	ApiUrl         string `gorm:"column:api_url"`
	Config         string `gorm:"column:config"`
}

func (hosterRow) TableName() string { return "hoster" }

func (r hosterRow) toHoster() (*hoster.Hoster, error) {
	h := &hoster.Hoster{Id: r.Id, Type: r.Type, LandingpageUrl: r.LandingpageUrl, ApiUrl: r.ApiUrl}
	if r.Config != "" {
		if err := json.Unmarshal([]byte(r.Config), &h.Config); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func fromHoster(h *hoster.Hoster) (*hosterRow, error) {
	cfgJSON, err := json.Marshal(h.Config)
	if err != nil {
		return nil, err
	}
	return &hosterRow{Id: h.Id, Type: h.Type, LandingpageUrl: h.LandingpageUrl, ApiUrl: h.ApiUrl, Config: string(cfgJSON)}, nil
}

const listByTypeCacheKeyPrefix = "hosters_by_type:"

// Registry is the gorm/postgres-backed HosterRegistry.
type Registry struct {
	db    *gorm.DB
	cache *cache.Cache
}

// New builds a Registry. cacheTTL controls how stale the ListByType
// snapshot used by the load-balanced endpoint may be; pass 0 to
// disable caching entirely.
func New(db *gorm.DB, cacheTTL time.Duration) *Registry {
	var c *cache.Cache
	if cacheTTL > 0 {
		c = cache.New(cacheTTL, cacheTTL*2)
	}
	return &Registry{db: db, cache: c}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&hosterRow{})
}

func (r *Registry) Register(ctx context.Context, h *hoster.Hoster) error {
	if h.Id == "" {
		h.Id = uuid.NewString()
	}
	row, err := fromHoster(h)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"type", "landingpage_url", "api_url", "config"}),
	}).Create(row).Error
	if err != nil {
		return err
	}
	if r.cache != nil {
		r.cache.Delete(listByTypeCacheKeyPrefix + h.Type)
	}
	return nil
}

func (r *Registry) Get(ctx context.Context, id string) (*hoster.Hoster, bool, error) {
	var row hosterRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	h, err := row.toHoster()
	if err != nil {
		return nil, false, err
	}
	return h, true, nil
}

func (r *Registry) ListByType(ctx context.Context, hosterType string) ([]*hoster.Hoster, error) {
	key := listByTypeCacheKeyPrefix + hosterType
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			return cached.([]*hoster.Hoster), nil
		}
	}

	var rows []hosterRow
	if err := r.db.WithContext(ctx).Where("type = ?", hosterType).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*hoster.Hoster, 0, len(rows))
	for _, row := range rows {
		h, err := row.toHoster()
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}

	if r.cache != nil {
		r.cache.SetDefault(key, out)
	}
	return out, nil
}

func (r *Registry) List(ctx context.Context) ([]*hoster.Hoster, error) {
	var rows []hosterRow
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*hoster.Hoster, 0, len(rows))
	for _, row := range rows {
		h, err := row.toHoster()
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}
