// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package block holds the Block value object: one contiguous unit of
// crawl work over a hoster's repository id space.
package block

import "github.com/google/uuid"

const (
	StatusFree     = "free"
	StatusCrawling = "crawling"
)

// Block is one unit of crawl work, as described in spec section 3.
// It is intentionally a plain value object: the policy that creates,
// times out and finishes blocks lives in pkg/state, not here.
type Block struct {
	Uid        string  `json:"uid"`
	RunUid     string  `json:"run_uid"`
	FromId     int64   `json:"from_id"`
	ToId       int64   `json:"to_id"`
	Ids        []int64 `json:"ids"`
	AttemptsAt []int64 `json:"attempts_at"`
	Status     string  `json:"status"`
}

// New creates a fresh Block covering [fromId, toId] for runUid, with a
// single attempt timestamp. uid/run_uid are opaque identifiers per
// spec section 3.
func New(runUid string, fromId, toId int64, now int64) *Block {
	return &Block{
		Uid:        uuid.NewString(),
		RunUid:     runUid,
		FromId:     fromId,
		ToId:       toId,
		Ids:        nil,
		AttemptsAt: []int64{now},
		Status:     StatusFree,
	}
}

// LastAttempt returns the most recent issuance timestamp, or 0 if the
// block somehow has no attempts (should not happen per the invariant
// that AttemptsAt has length >= 1).
func (b *Block) LastAttempt() int64 {
	if len(b.AttemptsAt) == 0 {
		return 0
	}
	return b.AttemptsAt[len(b.AttemptsAt)-1]
}

// LastConfirmableId returns the id that should be used to advance
// highest_confirmed_repo_id when this block is successfully resolved:
// the last element of the explicit Ids list if present, else ToId.
func (b *Block) LastConfirmableId() int64 {
	if len(b.Ids) > 0 {
		return b.Ids[len(b.Ids)-1]
	}
	return b.ToId
}

// Clone returns a deep copy so callers holding a Block from the store
// cannot mutate store-owned state through it.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	cp := *b
	if b.Ids != nil {
		cp.Ids = append([]int64(nil), b.Ids...)
	}
	if b.AttemptsAt != nil {
		cp.AttemptsAt = append([]int64(nil), b.AttemptsAt...)
	}
	return &cp
}
