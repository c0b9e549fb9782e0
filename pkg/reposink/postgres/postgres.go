// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package postgres is the production repository sink: idempotent
// gorm upsert keyed by (hoster_id, repo_id), grounded on the teacher's
// facade upsert pattern (pkg/database/*_facade.go, clause.OnConflict).
package postgres

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/repofleet/coordinator/pkg/reposink"
)

type repoRow struct {
	HosterId string `gorm:"primaryKey;column:hoster_id"`
	RepoId   int64  `gorm:"primaryKey;column:repo_id"`
	Name     string `gorm:"column:name"`
	Attrs    string `gorm:"column:attrs"`
}

func (repoRow) TableName() string { return "repo" }

// Sink is the gorm/postgres-backed reposink.Sink.
type Sink struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Sink {
	return &Sink{db: db}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&repoRow{})
}

func (s *Sink) Put(ctx context.Context, repos []reposink.Repo) error {
	if len(repos) == 0 {
		return nil
	}
	rows := make([]repoRow, 0, len(repos))
	for _, r := range repos {
		attrsJSON, err := json.Marshal(r.Attrs)
		if err != nil {
			return err
		}
		rows = append(rows, repoRow{HosterId: r.HosterId, RepoId: r.RepoId, Name: r.Name, Attrs: string(attrsJSON)})
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hoster_id"}, {Name: "repo_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "attrs"}),
	}).Create(&rows).Error
}
