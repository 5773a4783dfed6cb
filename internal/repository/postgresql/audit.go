package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/kitabonkesaar/attendance-app-saas/internal/domain/audit"
	"github.com/kitabonkesaar/attendance-app-saas/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}

// Append implements audit.AuditRepository.
func (r *auditRepository) Append(ctx context.Context, e audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	changes, err := json.Marshal(e.Changes)
	if err != nil {
		return fmt.Errorf("failed to marshal audit changes: %w", err)
	}

	_, err = q.Exec(ctx, `
		INSERT INTO audit_log (id, actor_id, action, entity, entity_id, changes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.ActorID, e.Action, e.Entity, e.EntityID, changes)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

// ListByEntity implements audit.AuditRepository.
func (r *auditRepository) ListByEntity(ctx context.Context, entity string, entityID string, limit int) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if limit < 1 || limit > 200 {
		limit = 50
	}

	rows, err := q.Query(ctx, `
		SELECT id, actor_id, action, entity, entity_id, changes, created_at
		FROM audit_log
		WHERE entity = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, entity, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		var changes []byte
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &changes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &e.Changes); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit changes: %w", err)
			}
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
