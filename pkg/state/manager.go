// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package state implements the StateManager: the policy-free
// operations over a StateStore described in spec section 4.2 (issue
// next block, list blocks, detect timed-out block, finish block,
// reset). Each operation is a single store.Transact call, which is
// what makes it atomic per spec section 5.
package state

import (
	"context"

	"github.com/google/uuid"

	"github.com/repofleet/coordinator/pkg/block"
	"github.com/repofleet/coordinator/pkg/store"
)

// Manager implements the StateManager operations of spec section 4.2.
type Manager struct {
	Store        store.Store
	BatchSize    int64
	BlockTimeout int64
	// Now returns the current wall-clock time as a unix timestamp. It
	// is a field rather than a direct time.Now() call so tests can
	// drive the clock deterministically (spec section 8 scenario 4).
	Now func() int64
}

func NewManager(s store.Store, batchSize int64, blockTimeout int64, now func() int64) *Manager {
	return &Manager{Store: s, BatchSize: batchSize, BlockTimeout: blockTimeout, Now: now}
}

// GetNextBlock implements get_next_block (spec section 4.2): starts a
// fresh run if the hoster has none or its run is finished, then issues
// the next contiguous block.
func (m *Manager) GetNextBlock(ctx context.Context, hosterPrefix string) (*block.Block, error) {
	var result *block.Block
	err := m.Store.Transact(ctx, hosterPrefix, func(tx store.Tx) error {
		sd, err := tx.GetStateDict()
		if err != nil {
			return err
		}
		now := m.Now()

		if sd.RunUid == "" || sd.RunIsFinished {
			if err := tx.DeleteAllBlocks(); err != nil {
				return err
			}
			sd = store.StateDict{
				RunUid:       uuid.NewString(),
				RunCreatedTs: now,
			}
		}

		from := sd.HighestBlockRepoId + 1
		to := sd.HighestBlockRepoId + m.BatchSize
		b := block.New(sd.RunUid, from, to, now)
		if err := tx.PushBlock(b); err != nil {
			return err
		}
		sd.HighestBlockRepoId = to
		if err := tx.SetStateDict(sd); err != nil {
			return err
		}
		result = b
		return nil
	})
	return result, err
}

// GetTimedOutBlock implements get_timed_out_block (spec section 4.2):
// scans outstanding blocks for one whose most recent attempt is older
// than BlockTimeout, appends a fresh attempt timestamp to it (so
// concurrent callers don't all receive the same block, per the open
// question in spec section 9), and returns it.
func (m *Manager) GetTimedOutBlock(ctx context.Context, hosterPrefix string) (*block.Block, bool, error) {
	var result *block.Block
	var found bool
	err := m.Store.Transact(ctx, hosterPrefix, func(tx store.Tx) error {
		blocks, err := tx.ListBlocks()
		if err != nil {
			return err
		}
		now := m.Now()
		for _, b := range blocks {
			if now-b.LastAttempt() > m.BlockTimeout {
				b.AttemptsAt = append(b.AttemptsAt, now)
				if err := tx.ReplaceBlock(b); err != nil {
					return err
				}
				result = b
				found = true
				return nil
			}
		}
		return nil
	})
	return result, found, err
}

// GetBlock implements get_block: plain lookup by uid.
func (m *Manager) GetBlock(ctx context.Context, hosterPrefix, uid string) (*block.Block, bool, error) {
	var result *block.Block
	var found bool
	err := m.Store.Transact(ctx, hosterPrefix, func(tx store.Tx) error {
		b, ok, err := tx.GetBlock(uid)
		if err != nil {
			return err
		}
		result, found = b, ok
		return nil
	})
	return result, found, err
}

// FinishBlock implements finish_block: removes and returns the block,
// or ok=false if it was already gone.
func (m *Manager) FinishBlock(ctx context.Context, hosterPrefix, uid string) (*block.Block, bool, error) {
	var result *block.Block
	var found bool
	err := m.Store.Transact(ctx, hosterPrefix, func(tx store.Tx) error {
		b, ok, err := tx.PopBlock(uid)
		if err != nil {
			return err
		}
		result, found = b, ok
		return nil
	})
	return result, found, err
}

// FinishRun implements finish_run: marks the hoster's run finished.
// Outstanding blocks are left in place, to be discarded lazily by the
// next GetNextBlock call.
func (m *Manager) FinishRun(ctx context.Context, hosterPrefix string) error {
	return m.Store.Transact(ctx, hosterPrefix, func(tx store.Tx) error {
		sd, err := tx.GetStateDict()
		if err != nil {
			return err
		}
		sd.RunIsFinished = true
		return tx.SetStateDict(sd)
	})
}

// Reset implements reset: forces a new run and discards all
// outstanding blocks and counters.
func (m *Manager) Reset(ctx context.Context, hosterPrefix string) error {
	return m.Store.Transact(ctx, hosterPrefix, func(tx store.Tx) error {
		if err := tx.DeleteAllBlocks(); err != nil {
			return err
		}
		return tx.SetStateDict(store.StateDict{
			RunUid:       uuid.NewString(),
			RunCreatedTs: m.Now(),
		})
	})
}

// ListBlocks implements list blocks (spec section 2 overview table):
// a snapshot of every outstanding block for a hoster.
func (m *Manager) ListBlocks(ctx context.Context, hosterPrefix string) ([]*block.Block, error) {
	var result []*block.Block
	err := m.Store.Transact(ctx, hosterPrefix, func(tx store.Tx) error {
		blocks, err := tx.ListBlocks()
		if err != nil {
			return err
		}
		result = blocks
		return nil
	})
	return result, err
}

// GetStateDict implements get_state_dict: a snapshot of the hoster's
// counters.
func (m *Manager) GetStateDict(ctx context.Context, hosterPrefix string) (store.StateDict, error) {
	var result store.StateDict
	err := m.Store.Transact(ctx, hosterPrefix, func(tx store.Tx) error {
		sd, err := tx.GetStateDict()
		if err != nil {
			return err
		}
		result = sd
		return nil
	})
	return result, err
}
