package app

import (
	"context"
	"fmt"
	"strings"

	"book_my_hotel/internal/domain"
)

type UserService struct {
	repo domain.UserRepository
}

func NewUserService(r domain.UserRepository) *UserService { return &UserService{repo: r} }

func (s *UserService) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if err := validateUser(u); err != nil {
		return domain.User{}, err
	}
	return s.repo.CreateUser(ctx, u)
}

func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

// Update applies a partial patch to the stored user.
func (s *UserService) Update(ctx context.Context, id int64, p domain.UserPatch) (domain.User, error) {
	cur, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	next := cur.Apply(p)
	if err := validateUser(next); err != nil {
		return domain.User{}, err
	}
	if err := s.repo.UpdateUser(ctx, next); err != nil {
		return domain.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return next, nil
}

func validateUser(u domain.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("%w: email %q is invalid", domain.ErrValidation, u.Email)
	}
	return nil
}
