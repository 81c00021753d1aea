package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/study-portal/internal/ids"
	"github.com/SAP-F-2025/study-portal/internal/models"
	"github.com/SAP-F-2025/study-portal/internal/repositories"
	"github.com/SAP-F-2025/study-portal/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) []models.User {
	return s.repo.User().List(ctx, filters)
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	user, ok := s.repo.User().Get(ctx, id)
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

// Upsert updates the email and password of the user with id, or creates a
// student when id is empty or unknown. Emails stay unique ignoring case.
func (s *userService) Upsert(ctx context.Context, id string, req *UserUpsertRequest) (*models.User, error) {
	req.Normalize()
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	var (
		result  models.User
		created bool
	)
	err := s.repo.User().Mutate(ctx, func(users []models.User) ([]models.User, error) {
		target := -1
		for i := range users {
			if id != "" && users[i].ID == id {
				target = i
				break
			}
		}

		for i := range users {
			if i != target && strings.EqualFold(users[i].Email, req.Email) {
				return nil, fmt.Errorf("%w: %s", ErrEmailTaken, req.Email)
			}
		}

		if target >= 0 {
			users[target].Email = req.Email
			users[target].Password = req.Password
			result = users[target]
			return users, nil
		}

		result = models.User{
			ID:       ids.New(ids.PrefixUser),
			Email:    req.Email,
			Password: req.Password,
			Role:     models.RoleStudent,
		}
		created = true
		return append(users, result), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User saved", "user_id", result.ID, "created", created)
	return &result, nil
}

// Delete removes a user. Administrator records are refused.
func (s *userService) Delete(ctx context.Context, id string) (bool, error) {
	if user, ok := s.repo.User().Get(ctx, id); ok && user.IsAdmin() {
		return false, fmt.Errorf("user %s: %w", id, ErrProtectedUser)
	}

	removed, err := s.repo.User().Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	if removed {
		s.logger.InfoContext(ctx, "User deleted", "user_id", id)
	}
	return removed, nil
}
