package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domuser "devjobs/internal/domain/user"
	"devjobs/internal/pkg/validate"
)

var (
	ErrDuplicateAccount = errors.New("account already registered")
	ErrNotFound         = errors.New("user not found")
	ErrInternal         = errors.New("internal error")
)

type RegisterInput struct {
	Name     string `form:"nombre" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Confirm  string `form:"confirmar" validate:"required,eqfield=Password"`
}

type UpdateProfileInput struct {
	Name  string `form:"nombre" validate:"required"`
	Email string `form:"email" validate:"required,email"`
	// Password is optional; empty means keep the current one, and the
	// stored hash must not change in that case.
	Password string `form:"password" validate:"omitempty,min=6"`
	// AvatarImage is the stored filename of a freshly uploaded avatar,
	// already placed by the upload middleware. Empty keeps the current one.
	AvatarImage string `form:"-"`
}

type Usecase interface {
	Register(ctx context.Context, in RegisterInput) (domuser.User, error)
	Get(ctx context.Context, id uuid.UUID) (domuser.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (domuser.User, error)
}

type Service struct {
	users domuser.Repository
}

func NewService(users domuser.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (domuser.User, error) {
	if err := validate.Struct(in); err != nil {
		return domuser.User{}, err
	}

	u := domuser.User{
		Email:       domuser.NormalizeEmail(in.Email),
		DisplayName: in.Name,
		Password:    in.Password,
	}

	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, domuser.ErrDuplicateEmail) {
			return domuser.User{}, ErrDuplicateAccount
		}
		return domuser.User{}, ErrInternal
	}

	return domuser.Sanitize(u), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (domuser.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domuser.ErrNotFound) {
			return domuser.User{}, ErrNotFound
		}
		return domuser.User{}, ErrInternal
	}
	return domuser.Sanitize(u), nil
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (domuser.User, error) {
	if err := validate.Struct(in); err != nil {
		return domuser.User{}, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domuser.ErrNotFound) {
			return domuser.User{}, ErrNotFound
		}
		return domuser.User{}, ErrInternal
	}

	u.DisplayName = in.Name
	u.Email = domuser.NormalizeEmail(in.Email)
	if in.Password != "" {
		u.Password = in.Password
	}
	if in.AvatarImage != "" {
		u.AvatarImage = in.AvatarImage
	}

	if err := s.users.Save(ctx, &u); err != nil {
		if errors.Is(err, domuser.ErrDuplicateEmail) {
			return domuser.User{}, ErrDuplicateAccount
		}
		return domuser.User{}, ErrInternal
	}

	return domuser.Sanitize(u), nil
}
