package vacancy

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	domvac "devjobs/internal/domain/vacancy"
	"devjobs/internal/pkg/validate"
	"devjobs/internal/search"
)

var (
	ErrNotFound = errors.New("vacancy not found")

	// ErrNotOwner deliberately covers "no such vacancy" as well for
	// mutations, so a caller cannot probe which vacancies exist.
	ErrNotOwner = errors.New("not the vacancy owner")

	ErrInternal = errors.New("internal error")
)

// ApplicationNotifier pushes a live event to the vacancy owner when a
// candidate applies. Delivery is best effort.
type ApplicationNotifier interface {
	NotifyNewApplication(authorID uuid.UUID, vacancyTitle, candidateName string)
}

type Input struct {
	Title       string `form:"titulo" validate:"required"`
	Company     string `form:"empresa" validate:"required"`
	Location    string `form:"ubicacion" validate:"required"`
	Salary      string `form:"salario"`
	Contract    string `form:"contrato"`
	Description string `form:"descripcion"`
	// Skills is the raw comma-separated list from the form.
	Skills string `form:"skills" validate:"required"`
}

type CandidateInput struct {
	Name  string `form:"nombre" validate:"required"`
	Email string `form:"email" validate:"required,email"`
	// ResumeFile is the stored filename placed by the upload middleware.
	ResumeFile string `form:"-" validate:"required"`
}

type Usecase interface {
	Create(ctx context.Context, authorID uuid.UUID, in Input) (domvac.Vacancy, error)
	GetBySlug(ctx context.Context, slug string) (domvac.Vacancy, error)
	Update(ctx context.Context, slug string, actorID uuid.UUID, in Input) (domvac.Vacancy, error)
	Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
	ListAll(ctx context.Context) ([]domvac.Vacancy, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domvac.Vacancy, error)
	Search(ctx context.Context, query string) ([]domvac.Vacancy, error)
	Apply(ctx context.Context, slug string, in CandidateInput) error
	Candidates(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (domvac.Vacancy, []domvac.Candidate, error)
}

// SearchCache keeps recent search results close. All methods are fail-open;
// a nil cache disables caching entirely.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type Service struct {
	vacancies domvac.Repository
	notifier  ApplicationNotifier
	cache     SearchCache
}

func NewService(vacancies domvac.Repository, notifier ApplicationNotifier, cache SearchCache) *Service {
	return &Service{vacancies: vacancies, notifier: notifier, cache: cache}
}

func (s *Service) Create(ctx context.Context, authorID uuid.UUID, in Input) (domvac.Vacancy, error) {
	if err := validate.Struct(in); err != nil {
		return domvac.Vacancy{}, err
	}

	v := domvac.Vacancy{
		AuthorID:    authorID,
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		Salary:      strings.TrimSpace(in.Salary),
		Contract:    strings.TrimSpace(in.Contract),
		Description: strings.TrimSpace(in.Description),
		Skills:      splitSkills(in.Skills),
	}
	v.Slug = makeSlug(v.Title)

	if err := s.vacancies.Create(ctx, &v); err != nil {
		return domvac.Vacancy{}, ErrInternal
	}

	s.invalidateSearchCache(ctx)
	return v, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (domvac.Vacancy, error) {
	v, err := s.vacancies.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domvac.ErrNotFound) {
			return domvac.Vacancy{}, ErrNotFound
		}
		return domvac.Vacancy{}, ErrInternal
	}
	return v, nil
}

func (s *Service) Update(ctx context.Context, slug string, actorID uuid.UUID, in Input) (domvac.Vacancy, error) {
	if err := validate.Struct(in); err != nil {
		return domvac.Vacancy{}, err
	}

	v, err := s.vacancies.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domvac.ErrNotFound) {
			return domvac.Vacancy{}, ErrNotOwner
		}
		return domvac.Vacancy{}, ErrInternal
	}
	if !v.OwnedBy(actorID) {
		return domvac.Vacancy{}, ErrNotOwner
	}

	v.Title = strings.TrimSpace(in.Title)
	v.Company = strings.TrimSpace(in.Company)
	v.Location = strings.TrimSpace(in.Location)
	v.Salary = strings.TrimSpace(in.Salary)
	v.Contract = strings.TrimSpace(in.Contract)
	v.Description = strings.TrimSpace(in.Description)
	v.Skills = splitSkills(in.Skills)

	if err := s.vacancies.Update(ctx, &v); err != nil {
		return domvac.Vacancy{}, ErrInternal
	}

	s.invalidateSearchCache(ctx)
	return v, nil
}

// Delete removes the vacancy if actorID owns it. A missing vacancy yields
// the same ErrNotOwner as a foreign one, and deleting twice does not fail.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	v, err := s.vacancies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domvac.ErrNotFound) {
			return ErrNotOwner
		}
		return ErrInternal
	}
	if !v.OwnedBy(actorID) {
		return ErrNotOwner
	}

	if err := s.vacancies.Delete(ctx, id); err != nil {
		return ErrInternal
	}

	s.invalidateSearchCache(ctx)
	return nil
}

// ListAll returns every published vacancy, newest first. It feeds the public
// home page, so no actor is involved.
func (s *Service) ListAll(ctx context.Context) ([]domvac.Vacancy, error) {
	out, err := s.vacancies.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domvac.Vacancy, error) {
	out, err := s.vacancies.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// Search runs the query and every known synonym of it, merging results in
// order. Results are served from the cache when a recent identical search
// exists; mutations drop the whole search cache.
func (s *Service) Search(ctx context.Context, query string) ([]domvac.Vacancy, error) {
	terms := search.Expand(query)
	if len(terms) == 0 {
		return []domvac.Vacancy{}, nil
	}

	key := searchCacheKey(terms[0])
	if s.cache != nil {
		var cached []domvac.Vacancy
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	seen := make(map[uuid.UUID]bool)
	out := []domvac.Vacancy{}
	for _, term := range terms {
		found, err := s.vacancies.Search(ctx, term)
		if err != nil {
			return nil, ErrInternal
		}
		for _, v := range found {
			if !seen[v.ID] {
				seen[v.ID] = true
				out = append(out, v)
			}
		}
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, out, searchCacheTTL)
	}
	return out, nil
}

const searchCacheTTL = 10 * time.Minute

func searchCacheKey(normalizedQuery string) string {
	sum := sha256.Sum256([]byte(normalizedQuery))
	return "vacantes:buscar:" + hex.EncodeToString(sum[:])
}

func (s *Service) invalidateSearchCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.DeleteByPattern(ctx, "vacantes:buscar:*")
	}
}

func (s *Service) Apply(ctx context.Context, slug string, in CandidateInput) error {
	if err := validate.Struct(in); err != nil {
		return err
	}

	v, err := s.vacancies.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domvac.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	c := domvac.Candidate{
		VacancyID:  v.ID,
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		ResumeFile: in.ResumeFile,
	}
	if err := s.vacancies.AddCandidate(ctx, &c); err != nil {
		return ErrInternal
	}

	if s.notifier != nil && v.AuthorID != uuid.Nil {
		s.notifier.NotifyNewApplication(v.AuthorID, v.Title, c.Name)
	}
	return nil
}

// Candidates lists applications for a vacancy, owner only. Like the other
// mutating paths, a missing vacancy is indistinguishable from a foreign one.
func (s *Service) Candidates(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (domvac.Vacancy, []domvac.Candidate, error) {
	v, err := s.vacancies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domvac.ErrNotFound) {
			return domvac.Vacancy{}, nil, ErrNotOwner
		}
		return domvac.Vacancy{}, nil, ErrInternal
	}
	if !v.OwnedBy(actorID) {
		return domvac.Vacancy{}, nil, ErrNotOwner
	}

	cands, err := s.vacancies.ListCandidates(ctx, id)
	if err != nil {
		return domvac.Vacancy{}, nil, ErrInternal
	}
	return v, cands, nil
}

func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// makeSlug builds a URL segment from the title plus a short random suffix,
// so two vacancies with the same title never collide.
func makeSlug(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")

	suffix := strings.ToLower(ulid.MustNew(ulid.Now(), rand.Reader).String())
	suffix = suffix[len(suffix)-8:]

	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
