package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReportKind distinguishes the three AI advisory tools.
type ReportKind string

const (
	ReportKindDisease ReportKind = "disease"
	ReportKindSoil    ReportKind = "soil"
	ReportKindYield   ReportKind = "yield"
)

// Valid reports whether k is a known report kind.
func (k ReportKind) Valid() bool {
	switch k {
	case ReportKindDisease, ReportKindSoil, ReportKindYield:
		return true
	default:
		return false
	}
}

// Report is a stored advisory result so the dashboard history pages can
// re-render past diagnoses without re-querying the model gateway.
type Report struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Kind      ReportKind     `json:"kind"`
	Title     string         `json:"title"`
	Summary   string         `json:"summary,omitempty"` // short human-readable input summary
	Result    map[string]any `json:"result"`            // the typed gateway response, as stored JSON
	ModelUsed string         `json:"model_used,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type ReportRepository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Report, error)
	ListByUser(ctx context.Context, userID uuid.UUID, kind ReportKind, limit, offset int) ([]*Report, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
