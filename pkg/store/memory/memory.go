// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package memory is the in-memory StateStore implementation used by
// tests and single-process deployments (spec section 4.1).
package memory

import (
	"context"
	"sync"

	"github.com/repofleet/coordinator/pkg/block"
	"github.com/repofleet/coordinator/pkg/store"
)

type hosterData struct {
	mu     sync.Mutex
	state  store.StateDict
	blocks map[string]*block.Block
}

// Store is a process-local StateStore. Every hoster gets its own
// mutex, so Transact calls for different hosters never block each
// other (spec section 5: "no ordering guarantee across hosters").
type Store struct {
	mu      sync.Mutex
	hosters map[string]*hosterData
}

func New() *Store {
	return &Store{hosters: make(map[string]*hosterData)}
}

func (s *Store) hoster(hosterPrefix string) *hosterData {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hosters[hosterPrefix]
	if !ok {
		h = &hosterData{blocks: make(map[string]*block.Block)}
		s.hosters[hosterPrefix] = h
	}
	return h
}

func (s *Store) Transact(_ context.Context, hosterPrefix string, fn func(tx store.Tx) error) error {
	h := s.hoster(hosterPrefix)
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(&memTx{h: h})
}

type memTx struct {
	h *hosterData
}

func (t *memTx) GetStateDict() (store.StateDict, error) {
	return t.h.state, nil
}

func (t *memTx) SetStateDict(sd store.StateDict) error {
	t.h.state = sd
	return nil
}

func (t *memTx) PushBlock(b *block.Block) error {
	t.h.blocks[b.Uid] = b.Clone()
	return nil
}

func (t *memTx) PopBlock(uid string) (*block.Block, bool, error) {
	b, ok := t.h.blocks[uid]
	if !ok {
		return nil, false, nil
	}
	delete(t.h.blocks, uid)
	return b.Clone(), true, nil
}

func (t *memTx) GetBlock(uid string) (*block.Block, bool, error) {
	b, ok := t.h.blocks[uid]
	if !ok {
		return nil, false, nil
	}
	return b.Clone(), true, nil
}

func (t *memTx) ReplaceBlock(b *block.Block) error {
	t.h.blocks[b.Uid] = b.Clone()
	return nil
}

func (t *memTx) ListBlocks() ([]*block.Block, error) {
	out := make([]*block.Block, 0, len(t.h.blocks))
	for _, b := range t.h.blocks {
		out = append(out, b.Clone())
	}
	return out, nil
}

func (t *memTx) DeleteAllBlocks() error {
	t.h.blocks = make(map[string]*block.Block)
	return nil
}
