package vacancy

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("vacancy not found")

type Repository interface {
	Create(ctx context.Context, v *Vacancy) error
	Update(ctx context.Context, v *Vacancy) error

	// Delete is idempotent: deleting an already-deleted vacancy is not an
	// error.
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (Vacancy, error)
	GetBySlug(ctx context.Context, slug string) (Vacancy, error)
	ListAll(ctx context.Context) ([]Vacancy, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]Vacancy, error)
	Search(ctx context.Context, query string) ([]Vacancy, error)

	AddCandidate(ctx context.Context, c *Candidate) error
	ListCandidates(ctx context.Context, vacancyID uuid.UUID) ([]Candidate, error)
}
