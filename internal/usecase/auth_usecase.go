package usecase

import (
	"context"
	"errors"
	"time"

	"placementhub-backend/internal/domain"
	"placementhub-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// EnsureUserExists returns the local user for a verified Supabase identity,
// creating it as a student on first sight. The role stored locally wins over
// anything carried in the token.
func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) (*domain.User, error) {
	existing, err := u.userRepo.GetByID(ctx, user.ID)
	if err == nil && existing != nil {
		if user.Email != "" && existing.Email != user.Email {
			existing.Email = user.Email
			existing.UpdatedAt = time.Now()
			if err := u.userRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	created := &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		Role:      domain.RoleStudent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.userRepo.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (u *authUsecase) AssignRole(ctx context.Context, userID string, role string) error {
	// Security: Only admin can assign roles
	if _, ctxRole := domain.Caller(ctx); ctxRole != domain.RoleAdmin {
		return apperror.Forbidden("Only admins can assign roles")
	}
	if role != domain.RoleStudent && role != domain.RoleAdmin {
		return apperror.BadRequest("Role must be student or admin")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return err
	}

	user.Role = role
	user.UpdatedAt = time.Now()
	return u.userRepo.Update(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}
