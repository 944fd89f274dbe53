package config

import "time"

// UI and Display Constants
const (
	LeaderboardPageSize = 10
	RecentHistorySize   = 5

	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	EmbedDefaultColor = 0x2B2D31
)

// Database and Performance Constants
const (
	DefaultQueryTimeout     = 10 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	SlowCommandThreshold    = 2 * time.Second
	ArchiveUploadTimeout    = 30 * time.Second
	NotifierSendTimeout     = 10 * time.Second
)

// Limiter
const (
	RateLimitWindow  = time.Minute
	LimiterCacheSize = 10000
)
