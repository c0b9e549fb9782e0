// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metrics

// DefaultMetricsNamespace prefixes every metric emitted by the coordinator
// unless a call site overrides it with WithNamespace.
const DefaultMetricsNamespace = "crawlcoord"
