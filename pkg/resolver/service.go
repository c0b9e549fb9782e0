// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package resolver

import (
	"context"

	"github.com/repofleet/coordinator/pkg/store"
)

// Service runs resolve_state (spec section 4.3) as a single
// store.Transact call per hoster: every step from the block lookup
// through the state-dict write happens under one hoster lock, so a
// concurrent get_next_block or second callback cannot observe a
// half-applied resolution.
type Service struct {
	Store           store.Store
	BatchSize       int64
	EmptyResultsMax int
}

func NewService(s store.Store, batchSize int64, emptyResultsMax int) *Service {
	return &Service{Store: s, BatchSize: batchSize, EmptyResultsMax: emptyResultsMax}
}

// Resolve implements resolve_state. It returns (nil, nil) when the
// callback did not apply (stale block or closed run — spec section
// 4.3 steps 2-3), and otherwise a non-nil bool giving the hoster's
// run_is_finished state after the callback was applied.
func (s *Service) Resolve(ctx context.Context, hosterPrefix string, detector EndDetector, blockUid string, repoCount int) (*bool, error) {
	var result *bool
	err := s.Store.Transact(ctx, hosterPrefix, func(tx store.Tx) error {
		b, ok, err := tx.GetBlock(blockUid)
		if err != nil {
			return err
		}
		if !ok {
			return nil // stale callback, block already finished
		}

		sd, err := tx.GetStateDict()
		if err != nil {
			return err
		}
		if sd.RunIsFinished {
			return nil // belongs to a now-closed round
		}

		if _, _, err := tx.PopBlock(blockUid); err != nil {
			return err
		}

		isEmpty := repoCount == 0
		if isEmpty {
			sd.EmptyResultsCounter++
		} else {
			sd.EmptyResultsCounter = 0
		}

		hasReachedEnd := detector.HasReachedEnd(b, isEmpty, sd.HighestConfirmedRepoId, s.BatchSize)
		hasTooManyEmpty := sd.EmptyResultsCounter >= s.EmptyResultsMax

		if hasReachedEnd || hasTooManyEmpty {
			sd.RunIsFinished = true
		} else {
			if candidate := b.LastConfirmableId(); candidate > sd.HighestConfirmedRepoId {
				sd.HighestConfirmedRepoId = candidate
			}
		}

		if err := tx.SetStateDict(sd); err != nil {
			return err
		}
		finished := sd.RunIsFinished
		result = &finished
		return nil
	})
	return result, err
}
