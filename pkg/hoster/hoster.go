// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package hoster implements the HosterRegistry of spec section 4.4 /
// 2 (Overview table): lookup of registered hosters by id or type.
package hoster

import "context"

// Hoster is a registered source-code hosting instance (spec GLOSSARY).
type Hoster struct {
	Id             string            `json:"id"`
	Type           string            `json:"type"`
	LandingpageUrl string            `json:"landingpage_url"`
	ApiUrl         string            `json:"api_url"`
	Config         map[string]string `json:"config"`
}

// Registry looks up and registers hosters. Two implementations exist
// — pkg/hoster/memory for tests, pkg/hoster/postgres for production —
// mirroring the StateStore split in spec section 4.1.
type Registry interface {
	Register(ctx context.Context, h *Hoster) error
	Get(ctx context.Context, id string) (*Hoster, bool, error)
	ListByType(ctx context.Context, hosterType string) ([]*Hoster, error)
	List(ctx context.Context) ([]*Hoster, error)
}
