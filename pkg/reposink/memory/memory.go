// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package memory is an in-memory repository sink, used by tests and
// as the test double the Dispatcher's callback path exercises without
// a database.
package memory

import (
	"context"
	"sync"

	"github.com/repofleet/coordinator/pkg/reposink"
)

type key struct {
	hosterId string
	repoId   int64
}

type Sink struct {
	mu    sync.Mutex
	repos map[key]reposink.Repo
}

func New() *Sink {
	return &Sink{repos: make(map[key]reposink.Repo)}
}

func (s *Sink) Put(_ context.Context, repos []reposink.Repo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range repos {
		s.repos[key{r.HosterId, r.RepoId}] = r
	}
	return nil
}

func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.repos)
}

func (s *Sink) Get(hosterId string, repoId int64) (reposink.Repo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.repos[key{hosterId, repoId}]
	return r, ok
}
