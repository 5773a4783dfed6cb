package audit

import "context"

// AuditRepository appends and reads audit entries.
type AuditRepository interface {
	// Append writes one entry
	Append(ctx context.Context, e Entry) error

	// ListByEntity retrieves entries for one entity, newest first
	ListByEntity(ctx context.Context, entity string, entityID string, limit int) ([]Entry, error)
}
