package lead

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository keeps a local log of accepted lead submissions.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a lead log repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert records an accepted lead, assigning it an id and submission
// time if the caller did not.
func (r *Repository) Insert(l Lead) (Lead, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.SubmittedAt.IsZero() {
		l.SubmittedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(
		`INSERT INTO leads (id, name, email, phone, company, project_id, project_name, message, unit_size, budget, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Email, l.Phone, l.Company,
		l.ProjectID, l.ProjectName, l.Message,
		l.UnitSize, l.Budget, l.SubmittedAt,
	)
	if err != nil {
		return Lead{}, fmt.Errorf("inserting lead: %w", err)
	}
	return l, nil
}

// List returns logged leads, newest first.
func (r *Repository) List() ([]Lead, error) {
	rows, err := r.db.Query(
		`SELECT id, name, email, phone, company, project_id, project_name, message, unit_size, budget, submitted_at
		 FROM leads ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var leads []Lead
	for rows.Next() {
		var l Lead
		var unitSize, budget sql.NullFloat64
		err := rows.Scan(
			&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company,
			&l.ProjectID, &l.ProjectName, &l.Message,
			&unitSize, &budget, &l.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}
		if unitSize.Valid {
			l.UnitSize = &unitSize.Float64
		}
		if budget.Valid {
			l.Budget = &budget.Float64
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leads: %w", err)
	}
	return leads, nil
}
