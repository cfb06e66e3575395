package config

import "time"

const (
	// Notification queue
	NotifyQueueKey   = "notify:jobs"
	NotifyPopTimeout = 5 * time.Second

	// Audit event stream
	AuditChannel = "audit:messages"

	// Where a reporter can poll for new messages with their access code.
	// Included in notification jobs instead of any message content.
	ReporterStatusPath = "/public/reports"

	// Auth
	TokenTTL    = 72 * time.Hour
	TokenIssuer = "speakup-relay"
)
