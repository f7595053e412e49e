package vacancy

import (
	"time"

	"github.com/google/uuid"
)

type Vacancy struct {
	ID uuid.UUID

	// AuthorID is set once at creation and never reassigned. uuid.Nil means
	// the vacancy has no recorded author.
	AuthorID uuid.UUID

	Title       string
	Company     string
	Location    string
	Salary      string
	Contract    string
	Description string

	// Slug is the public URL segment for the vacancy.
	Slug string

	Skills []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether userID owns the vacancy. A vacancy without a
// recorded author is owned by no one, so the check denies instead of
// panicking on a missing author.
func (v Vacancy) OwnedBy(userID uuid.UUID) bool {
	if v.AuthorID == uuid.Nil || userID == uuid.Nil {
		return false
	}
	return v.AuthorID == userID
}

type Candidate struct {
	ID         uuid.UUID
	VacancyID  uuid.UUID
	Name       string
	Email      string
	ResumeFile string
	CreatedAt  time.Time
}
