// Package lead provides the inquiry domain model and its validation.
package lead

import (
	"net/mail"
	"strings"
	"time"
)

// Lead is a space inquiry submitted against a project. The CMS is the
// system of record; accepted leads are additionally logged locally.
type Lead struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Company     string    `json:"company,omitempty"`
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Message     string    `json:"message,omitempty"`
	UnitSize    *float64  `json:"unit_size,omitempty"` // sqm
	Budget      *float64  `json:"budget,omitempty"`    // USD
	SubmittedAt time.Time `json:"submitted_at,omitempty"`
}

// Validate checks the lead field by field and returns a map of field
// name to problem description. An empty map means the lead is valid;
// the caller surfaces problems inline so the user can correct and
// resubmit without losing the rest of the form.
func (l Lead) Validate() map[string]string {
	problems := make(map[string]string)

	if strings.TrimSpace(l.Name) == "" {
		problems["name"] = "name is required"
	}
	switch email := strings.TrimSpace(l.Email); {
	case email == "":
		problems["email"] = "email is required"
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			problems["email"] = "email is not a valid address"
		}
	}
	if l.UnitSize != nil && *l.UnitSize <= 0 {
		problems["unit_size"] = "unit size must be positive"
	}
	if l.Budget != nil && *l.Budget <= 0 {
		problems["budget"] = "budget must be positive"
	}

	return problems
}
