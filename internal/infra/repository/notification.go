package repository

import (
	"context"
	"time"

	"resortly/internal/infra"
	"resortly/internal/infra/db"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

// CreateJob enqueues an outbound notification in the same transaction
// as the state change it announces, so a rollback drops both.
func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
		VALUES ($1, $2, $3, $4, 'pending')`,
		kind, topic, payload, runAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
