// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package main

import (
	"context"

	"github.com/repofleet/coordinator/pkg/bootstrap"
	"github.com/repofleet/coordinator/pkg/logger/log"
)

func main() {
	if err := bootstrap.StartServer(context.Background()); err != nil {
		log.Fatalf("coordinator exited: %v", err)
	}
}
