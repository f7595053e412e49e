package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"devjobs/internal/database"
	"devjobs/internal/domain/vacancy"
)

type PostgresVacancyRepository struct {
	db database.DB
}

func NewPostgresVacancyRepository(db database.DB) *PostgresVacancyRepository {
	return &PostgresVacancyRepository{db: db}
}

func (r *PostgresVacancyRepository) Create(ctx context.Context, v *vacancy.Vacancy) error {
	if v == nil {
		return errors.New("nil vacancy")
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO vacancies (id, author_id, title, company, location, salary, contract, description, slug, skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		v.ID, nullableUUID(v.AuthorID), v.Title, v.Company, v.Location,
		v.Salary, v.Contract, v.Description, v.Slug, v.Skills,
	)
	return err
}

// Update rewrites the posting fields. author_id is deliberately not in the
// SET list: ownership is immutable after creation.
func (r *PostgresVacancyRepository) Update(ctx context.Context, v *vacancy.Vacancy) error {
	if v == nil {
		return errors.New("nil vacancy")
	}

	n, err := r.db.Exec(ctx,
		`UPDATE vacancies
		 SET title = $2,
		     company = $3,
		     location = $4,
		     salary = $5,
		     contract = $6,
		     description = $7,
		     skills = $8,
		     updated_at = now()
		 WHERE id = $1`,
		v.ID, v.Title, v.Company, v.Location, v.Salary, v.Contract, v.Description, v.Skills,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return vacancy.ErrNotFound
	}
	return nil
}

func (r *PostgresVacancyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Zero rows affected means the vacancy was already gone; that is fine.
	_, err := r.db.Exec(ctx, `DELETE FROM vacancies WHERE id = $1`, id)
	return err
}

func (r *PostgresVacancyRepository) GetByID(ctx context.Context, id uuid.UUID) (vacancy.Vacancy, error) {
	row := r.db.QueryRow(ctx, selectVacancy+` WHERE id = $1`, id)
	return scanVacancy(row)
}

func (r *PostgresVacancyRepository) GetBySlug(ctx context.Context, slug string) (vacancy.Vacancy, error) {
	row := r.db.QueryRow(ctx, selectVacancy+` WHERE slug = $1`, strings.TrimSpace(slug))
	return scanVacancy(row)
}

func (r *PostgresVacancyRepository) ListAll(ctx context.Context) ([]vacancy.Vacancy, error) {
	rows, err := r.db.Query(ctx, selectVacancy+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectVacancies(rows)
}

func (r *PostgresVacancyRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]vacancy.Vacancy, error) {
	rows, err := r.db.Query(ctx,
		selectVacancy+` WHERE author_id = $1 ORDER BY created_at DESC`,
		authorID,
	)
	if err != nil {
		return nil, err
	}
	return collectVacancies(rows)
}

func (r *PostgresVacancyRepository) Search(ctx context.Context, query string) ([]vacancy.Vacancy, error) {
	rows, err := r.db.Query(ctx,
		selectVacancy+`
		 WHERE to_tsvector('spanish', title || ' ' || company || ' ' || location || ' ' || description)
		       @@ plainto_tsquery('spanish', $1)
		 ORDER BY created_at DESC`,
		strings.TrimSpace(query),
	)
	if err != nil {
		return nil, err
	}
	return collectVacancies(rows)
}

func (r *PostgresVacancyRepository) AddCandidate(ctx context.Context, c *vacancy.Candidate) error {
	if c == nil {
		return errors.New("nil candidate")
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO candidates (id, vacancy_id, name, email, resume_file) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.VacancyID, c.Name, c.Email, c.ResumeFile,
	)
	return err
}

func (r *PostgresVacancyRepository) ListCandidates(ctx context.Context, vacancyID uuid.UUID) ([]vacancy.Candidate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, vacancy_id, name, email, resume_file, created_at
		 FROM candidates
		 WHERE vacancy_id = $1
		 ORDER BY created_at ASC`,
		vacancyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vacancy.Candidate, 0)
	for rows.Next() {
		var c vacancy.Candidate
		if err := rows.Scan(&c.ID, &c.VacancyID, &c.Name, &c.Email, &c.ResumeFile, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const selectVacancy = `SELECT id, author_id, title, company, location, salary, contract, description, slug, skills, created_at, updated_at FROM vacancies`

func scanVacancy(row database.Row) (vacancy.Vacancy, error) {
	var (
		v      vacancy.Vacancy
		author *uuid.UUID
	)
	if err := row.Scan(
		&v.ID, &author, &v.Title, &v.Company, &v.Location,
		&v.Salary, &v.Contract, &v.Description, &v.Slug, &v.Skills,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return vacancy.Vacancy{}, vacancy.ErrNotFound
		}
		return vacancy.Vacancy{}, err
	}
	if author != nil {
		v.AuthorID = *author
	}
	return v, nil
}

func collectVacancies(rows database.Rows) ([]vacancy.Vacancy, error) {
	defer rows.Close()

	out := make([]vacancy.Vacancy, 0)
	for rows.Next() {
		var (
			v      vacancy.Vacancy
			author *uuid.UUID
		)
		if err := rows.Scan(
			&v.ID, &author, &v.Title, &v.Company, &v.Location,
			&v.Salary, &v.Contract, &v.Description, &v.Slug, &v.Skills,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if author != nil {
			v.AuthorID = *author
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullableUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}
