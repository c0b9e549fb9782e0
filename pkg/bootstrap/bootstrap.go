// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package bootstrap wires the coordinator's collaborators together and
// starts the HTTP server, mirroring the teacher's
// server.InitServer/InitServerWithPreInitFunc pattern.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/repofleet/coordinator/pkg/config"
	"github.com/repofleet/coordinator/pkg/dispatcher"
	"github.com/repofleet/coordinator/pkg/errors"
	"github.com/repofleet/coordinator/pkg/hoster"
	hostermemory "github.com/repofleet/coordinator/pkg/hoster/memory"
	hosterpostgres "github.com/repofleet/coordinator/pkg/hoster/postgres"
	"github.com/repofleet/coordinator/pkg/logger/log"
	"github.com/repofleet/coordinator/pkg/reposink"
	reposinkmemory "github.com/repofleet/coordinator/pkg/reposink/memory"
	reposinkpostgres "github.com/repofleet/coordinator/pkg/reposink/postgres"
	"github.com/repofleet/coordinator/pkg/resolver"
	"github.com/repofleet/coordinator/pkg/router"
	"github.com/repofleet/coordinator/pkg/state"
	"github.com/repofleet/coordinator/pkg/store"
	storememory "github.com/repofleet/coordinator/pkg/store/memory"
	storepostgres "github.com/repofleet/coordinator/pkg/store/postgres"
)

const hosterListCacheTTL = 10 * time.Second

// StartServer loads configuration, wires the store/registry/sink
// backends it selects, mounts the Dispatcher's routes, and blocks
// serving HTTP until the process is killed.
func StartServer(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := log.InitGlobalLogger(&cfg.Log); err != nil {
		return errors.NewError().WithCode(errors.CodeInitializeError).WithMessage("failed to init logger").WithError(err)
	}

	backends, err := buildBackends(cfg)
	if err != nil {
		return err
	}

	stateManager := state.NewManager(backends.store, int64(cfg.Dispatch.BatchSize), int64(cfg.Dispatch.BlockTimeoutSeconds), unixNow)
	resolverSvc := resolver.NewService(backends.store, int64(cfg.Dispatch.BatchSize), cfg.Dispatch.EmptyResultsMax)

	d := &dispatcher.Dispatcher{
		Hosters:         backends.hosters,
		State:           stateManager,
		Resolver:        resolverSvc,
		Sink:            backends.sink,
		BaseURL:         fmt.Sprintf("http://localhost%s", cfg.GetHttpBindAddress()),
		StaleRunSeconds: int64(cfg.Dispatch.StaleRunSeconds),
		Now:             unixNow,
	}

	router.RegisterGroup(d.RegisterRoutes)

	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery())
	if err := router.InitRouter(ginEngine, cfg); err != nil {
		return err
	}

	ginEngine.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	log.Infof("coordinator listening on %s", cfg.GetHttpBindAddress())
	return ginEngine.Run(cfg.GetHttpBindAddress())
}

func unixNow() int64 {
	return time.Now().Unix()
}

type backends struct {
	store   store.Store
	hosters hoster.Registry
	sink    reposink.Sink
}

func buildBackends(cfg *config.Config) (*backends, error) {
	switch cfg.Store.Backend {
	case "postgres":
		db, err := openPostgres(cfg.Store.Postgres)
		if err != nil {
			return nil, err
		}
		if err := storepostgres.AutoMigrate(db); err != nil {
			return nil, errors.NewError().WithCode(errors.CodeStoreError).WithMessage("failed to migrate store schema").WithError(err)
		}
		if err := hosterpostgres.AutoMigrate(db); err != nil {
			return nil, errors.NewError().WithCode(errors.CodeStoreError).WithMessage("failed to migrate hoster table").WithError(err)
		}
		if err := reposinkpostgres.AutoMigrate(db); err != nil {
			return nil, errors.NewError().WithCode(errors.CodeStoreError).WithMessage("failed to migrate repo table").WithError(err)
		}
		return &backends{
			store:   storepostgres.New(db),
			hosters: hosterpostgres.New(db, hosterListCacheTTL),
			sink:    reposinkpostgres.New(db),
		}, nil
	default:
		return &backends{
			store:   storememory.New(),
			hosters: hostermemory.New(),
			sink:    reposinkmemory.New(),
		}, nil
	}
}

func openPostgres(cfg config.PostgresConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, errors.NewError().WithCode(errors.CodeStoreError).WithMessage("failed to connect to postgres").WithError(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.NewError().WithCode(errors.CodeStoreError).WithMessage("failed to access sql.DB").WithError(err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}
