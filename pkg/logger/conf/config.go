// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package conf

// LogConfig selects the logging core, output formatter and minimum
// level for a Logger instance.
type LogConfig struct {
	Core      Core
	Formatter Formatter
	Level     Level
}

// DefaultConfig returns the logrus/console/info configuration used
// when the process does not override logging via its own config file.
func DefaultConfig() *LogConfig {
	return &LogConfig{
		Core:      LogrusCore,
		Formatter: ConsoleFormater,
		Level:     InfoLevel,
	}
}
