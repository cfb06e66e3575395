package identity

import (
	"context"
	"errors"

	"speakup/backend/internal/relay"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolver implements relay.IdentityResolver over PostgreSQL.
type Resolver struct {
	DB *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{DB: db}
}

// ResolveByAccessCode finds the reporter record for an access code.
// The NotFound error is identical for an unknown code and a code from
// another tenant.
func (r *Resolver) ResolveByAccessCode(ctx context.Context, code string) (*relay.ReporterRecord, error) {
	var rec ReporterRecord
	err := r.DB.WithContext(ctx).Where("access_code = ?", code).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &relay.NotFoundError{Resource: "access code"}
	}
	if err != nil {
		return nil, err
	}
	return toRelayRecord(&rec), nil
}

// ResolveForCase finds the reporter record linked to a case, if any.
func (r *Resolver) ResolveForCase(ctx context.Context, tenantID, caseID string) (*relay.ReporterRecord, error) {
	var rec ReporterRecord
	err := r.DB.WithContext(ctx).
		Where("tenant_id = ? AND linked_case_id = ?", tenantID, caseID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &relay.NotFoundError{Resource: "reporter record"}
	}
	if err != nil {
		return nil, err
	}
	return toRelayRecord(&rec), nil
}

// IssueAccessCode creates a reporter record and returns the opaque code.
// Called at report intake; caseID is nil until triage links the report.
func (r *Resolver) IssueAccessCode(ctx context.Context, tenantID string, caseID, contactEmail *string) (string, error) {
	rec := &ReporterRecord{
		TenantID:     tenantID,
		AccessCode:   uuid.New().String(),
		LinkedCaseID: caseID,
		ContactEmail: contactEmail,
	}
	if err := r.DB.WithContext(ctx).Create(rec).Error; err != nil {
		return "", err
	}
	return rec.AccessCode, nil
}

// LinkCase attaches a triaged report to its case.
func (r *Resolver) LinkCase(ctx context.Context, accessCode, caseID string) error {
	res := r.DB.WithContext(ctx).
		Model(&ReporterRecord{}).
		Where("access_code = ?", accessCode).
		Update("linked_case_id", caseID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &relay.NotFoundError{Resource: "access code"}
	}
	return nil
}

// toRelayRecord projects the persisted record onto the narrow view the
// relay is allowed to see.
func toRelayRecord(rec *ReporterRecord) *relay.ReporterRecord {
	return &relay.ReporterRecord{
		TenantID:       rec.TenantID,
		LinkedCaseID:   rec.LinkedCaseID,
		ContactChannel: rec.ContactEmail,
	}
}
