package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack-io/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-io/fintrack_backend/internal/core/ports/repositories"
)

// AuditRecorder appends immutable audit entries for mutation attempts. The
// append runs inside the owning unit of work, so it never half-succeeds: if
// the entry cannot be written the whole mutation rolls back with it.
type AuditRecorder struct{}

// NewAuditRecorder creates an AuditRecorder.
func NewAuditRecorder() *AuditRecorder {
	return &AuditRecorder{}
}

// Record appends one audit entry. userID may be nil for system actions.
func (r *AuditRecorder) Record(ctx context.Context, tx portsrepo.LedgerTx, userID *string, action domain.AuditAction, entityName, entityID, details string, now time.Time) error {
	entry := domain.AuditLog{
		AuditID:    uuid.NewString(),
		UserID:     userID,
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  now,
	}
	if err := tx.InsertAuditLog(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// transactionShape renders a transaction's balance-affecting fields for audit
// details. Update entries concatenate the old and new shapes.
func transactionShape(t domain.Transaction) string {
	return fmt.Sprintf("account=%s type=%s amount=%s category=%s ts=%s",
		t.AccountID, t.Type, t.Amount.StringFixed(2), t.Category, t.Timestamp.UTC().Format(time.RFC3339))
}
