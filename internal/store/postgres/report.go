package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agrisetu/agrisetu/internal/domain"
)

type ReportRepo struct {
	db DB
}

func NewReportRepo(db DB) *ReportRepo {
	return &ReportRepo{db: db}
}

func (r *ReportRepo) Create(ctx context.Context, rep *domain.Report) error {
	result, err := json.Marshal(rep.Result)
	if err != nil {
		return fmt.Errorf("reportRepo.Create: marshal result: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO reports (id, user_id, kind, title, summary, result, model_used, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rep.ID, rep.UserID, string(rep.Kind), rep.Title, nilIfEmpty(rep.Summary),
		result, nilIfEmpty(rep.ModelUsed), rep.CreatedAt,
	)
	if err != nil {
		if isFKViolation(err) {
			return fmt.Errorf("reportRepo.Create: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("reportRepo.Create: %w", err)
	}

	return nil
}

// GetByID is owner-scoped: a report belonging to another user reads as not found.
func (r *ReportRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Report, error) {
	rep, err := scanReport(r.db.QueryRow(ctx,
		`SELECT id, user_id, kind, title, summary, result, model_used, created_at
		 FROM reports WHERE user_id = $1 AND id = $2`,
		userID, id,
	))
	if err != nil {
		return nil, fmt.Errorf("reportRepo.GetByID: %w", err)
	}

	return rep, nil
}

func (r *ReportRepo) ListByUser(ctx context.Context, userID uuid.UUID, kind domain.ReportKind, limit, offset int) ([]*domain.Report, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, kind, title, summary, result, model_used, created_at
		 FROM reports
		 WHERE user_id = $1 AND ($2 = '' OR kind = $2)
		 ORDER BY created_at DESC, id
		 LIMIT $3 OFFSET $4`,
		userID, string(kind), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		rep, scanErr := scanReport(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("reportRepo.ListByUser: %w", scanErr)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reportRepo.ListByUser: rows: %w", err)
	}

	return reports, nil
}

func (r *ReportRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM reports WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("reportRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reportRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanReport(row pgx.Row) (*domain.Report, error) {
	var rep domain.Report
	var kind string
	var summary, modelUsed *string
	var result []byte

	err := row.Scan(&rep.ID, &rep.UserID, &kind, &rep.Title, &summary, &result, &modelUsed, &rep.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rep.Kind = domain.ReportKind(kind)
	rep.Summary = derefStr(summary)
	rep.ModelUsed = derefStr(modelUsed)

	if len(result) > 0 {
		if err := json.Unmarshal(result, &rep.Result); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
	}

	return &rep, nil
}
