// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package reposink gives a concrete shape to the "opaque persist these
// repo records" sink that spec section 1 treats as an external
// collaborator the core only consumes: "success is assumed if it
// returns". The Dispatcher's callback path (spec section 4.4) needs a
// real implementation to be exercisable end-to-end.
package reposink

import "context"

// Repo is one parsed repository record as a worker reports it. Only
// the fields the coordinator itself cares about (identity, for
// idempotent upsert) are modeled; hoster-specific payload parsing is
// explicitly out of scope (spec section 1 Non-goals).
type Repo struct {
	HosterId string            `json:"hoster_id"`
	RepoId   int64             `json:"repo_id"`
	Name     string            `json:"name"`
	Attrs    map[string]string `json:"attrs,omitempty"`
}

// Sink persists parsed repository records. Persistence must be
// idempotent keyed by (HosterId, RepoId) — spec section 1 relies on
// this for its at-least-once delivery guarantee.
type Sink interface {
	Put(ctx context.Context, repos []Repo) error
}
