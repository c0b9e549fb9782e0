// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package resolver implements the RunResolver ("StateHelper") of spec
// section 4.3: the per-hoster-type policy for deciding whether a
// crawl round has finished, expressed as a one-method interface
// selected by the hoster type tag at dispatch time (spec section 9 —
// "a small interface with one method has_reached_end", not a class
// hierarchy).
package resolver

import (
	"github.com/repofleet/coordinator/pkg/block"
)

const (
	TypeGithub = "github"
	TypeGitea  = "gitea"
	TypeGitlab = "gitlab"
)

// EndDetector is has_reached_end: true if b's callback, given
// highestConfirmed (the value *before* this callback's advance) and
// batchSize, marks the end of the current round.
type EndDetector interface {
	HasReachedEnd(b *block.Block, isEmpty bool, highestConfirmed, batchSize int64) bool
}

// Paginated implements the Gitea/GitLab policy: an empty page
// immediately following the last confirmed id is a genuine end of
// pagination. A non-empty result is never an end.
type Paginated struct{}

func (Paginated) HasReachedEnd(b *block.Block, isEmpty bool, highestConfirmed, batchSize int64) bool {
	if !isEmpty {
		return false
	}
	return b.ToId == highestConfirmed+batchSize
}

// IdScanned implements the GitHub policy: repo ids have arbitrary
// gaps (private, deleted, suspended accounts), so an empty block is
// never by itself conclusive. Id-scanned hosters rely entirely on the
// consecutive-empty-results counter in Service.Resolve.
type IdScanned struct{}

func (IdScanned) HasReachedEnd(*block.Block, bool, int64, int64) bool {
	return false
}

// ForType returns the EndDetector registered for a hoster type tag,
// or false if the type is unknown.
func ForType(hosterType string) (EndDetector, bool) {
	switch hosterType {
	case TypeGitea, TypeGitlab:
		return Paginated{}, true
	case TypeGithub:
		return IdScanned{}, true
	default:
		return nil, false
	}
}
