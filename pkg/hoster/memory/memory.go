// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package memory is the in-memory HosterRegistry used by tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/repofleet/coordinator/pkg/hoster"
)

type Registry struct {
	mu      sync.RWMutex
	hosters map[string]*hoster.Hoster
}

func New() *Registry {
	return &Registry{hosters: make(map[string]*hoster.Hoster)}
}

func (r *Registry) Register(_ context.Context, h *hoster.Hoster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h.Id == "" {
		h.Id = uuid.NewString()
	}
	cp := *h
	r.hosters[cp.Id] = &cp
	return nil
}

func (r *Registry) Get(_ context.Context, id string) (*hoster.Hoster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hosters[id]
	if !ok {
		return nil, false, nil
	}
	cp := *h
	return &cp, true, nil
}

func (r *Registry) ListByType(_ context.Context, hosterType string) ([]*hoster.Hoster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*hoster.Hoster
	for _, h := range r.hosters {
		if h.Type == hosterType {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *Registry) List(_ context.Context) ([]*hoster.Hoster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*hoster.Hoster, 0, len(r.hosters))
	for _, h := range r.hosters {
		cp := *h
		out = append(out, &cp)
	}
	return out, nil
}
