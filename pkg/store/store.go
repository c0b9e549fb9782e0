// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package store declares the StateStore abstraction: the keyed backing
// store for per-hoster crawl state (spec section 4.1). Two
// implementations satisfy it — pkg/store/memory for tests and
// pkg/store/postgres for production — and both must make every
// compound operation StateManager performs atomic per hoster (spec
// section 5).
package store

import (
	"context"

	"github.com/repofleet/coordinator/pkg/block"
)

// StateDict is the snapshot of a hoster's counters returned by
// get_state_dict (spec section 4.2) and read internally by the
// resolver and dispatcher.
type StateDict struct {
	RunUid                 string `json:"run_uid"`
	RunCreatedTs           int64  `json:"run_created_ts"`
	RunIsFinished          bool   `json:"run_is_finished"`
	HighestBlockRepoId     int64  `json:"highest_block_repo_id"`
	HighestConfirmedRepoId int64  `json:"highest_confirmed_repo_id"`
	EmptyResultsCounter    int    `json:"empty_results_counter"`
}

// Tx is the set of primitive operations available inside a Transact
// call, all scoped to the single hoster Transact was invoked for. A
// read on a field that has never been set returns its zero value,
// never an error (spec section 4.1 failure condition).
type Tx interface {
	GetStateDict() (StateDict, error)
	SetStateDict(StateDict) error

	PushBlock(b *block.Block) error
	// PopBlock removes and returns the block, or ok=false if absent.
	PopBlock(uid string) (b *block.Block, ok bool, err error)
	GetBlock(uid string) (b *block.Block, ok bool, err error)
	// ReplaceBlock overwrites an existing block in place (used to
	// persist an updated AttemptsAt after a timed-out reissue).
	ReplaceBlock(b *block.Block) error
	ListBlocks() ([]*block.Block, error)
	DeleteAllBlocks() error
}

// Store is the backing store for per-hoster crawl state. Transact
// grants the callback exclusive access to hosterPrefix's state for its
// duration: no other Transact call for the same hosterPrefix runs
// concurrently. This is the seam spec section 9 calls out — an
// in-memory implementation satisfies it with a per-hoster mutex, a
// remote implementation with a row lock inside a DB transaction.
type Store interface {
	Transact(ctx context.Context, hosterPrefix string, fn func(tx Tx) error) error
}
