package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/phdportal/internal/app/models"
	"github.com/yigit/phdportal/internal/app/models/dto"
	"github.com/yigit/phdportal/internal/app/repositories"
	"github.com/yigit/phdportal/internal/pkg/apperrors"
	"github.com/yigit/phdportal/internal/pkg/auth"
	"github.com/yigit/phdportal/internal/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(ctx context.Context, userID int64) (*models.DepartmentUser, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.DepartmentUser, error)
	GetUsers(ctx context.Context) ([]*models.DepartmentUser, error)
	DeleteUser(ctx context.Context, id int64) error
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo       *repositories.UserRepository
	departmentRepo *repositories.DepartmentRepository
	jwtService     *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo *repositories.UserRepository,
	departmentRepo *repositories.DepartmentRepository,
	jwtService *auth.JWTService,
) AuthService {
	return &authServiceImpl{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		jwtService:     jwtService,
	}
}

// Login verifies credentials and issues a token.
func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Same error for unknown account and bad password
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("User logged in")

	return &dto.LoginResponse{
		Token:        token,
		ExpiresIn:    expiresIn,
		Email:        user.Email,
		FullName:     user.FullName,
		Role:         string(user.Role),
		DepartmentID: user.DepartmentID,
	}, nil
}

// GetProfile returns the account of the authenticated caller, with its
// department attached for department-scoped accounts.
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.DepartmentUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if user.DepartmentID != nil {
		if department, err := s.departmentRepo.GetByID(ctx, *user.DepartmentID); err == nil {
			user.Department = department
		}
	}

	return user, nil
}

// CreateUser creates a portal account. Department-scoped roles must name an
// existing department; admins must not.
func (s *authServiceImpl) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.DepartmentUser, error) {
	role := models.UserRole(req.Role)

	if role == models.RoleDepartment {
		if req.DepartmentID == nil {
			return nil, fmt.Errorf("%w: department role requires a department", apperrors.ErrValidationFailed)
		}
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, apperrors.ErrDepartmentNotFound) {
				return nil, apperrors.ErrDepartmentNotFound
			}
			return nil, fmt.Errorf("error checking department: %w", err)
		}
	} else if req.DepartmentID != nil {
		return nil, fmt.Errorf("%w: only department accounts carry a department", apperrors.ErrValidationFailed)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.DepartmentUser{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     hashed,
		FullName:     req.FullName,
		Role:         role,
		DepartmentID: req.DepartmentID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// GetUsers lists every portal account.
func (s *authServiceImpl) GetUsers(ctx context.Context) ([]*models.DepartmentUser, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a portal account.
func (s *authServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid user ID", apperrors.ErrValidationFailed)
	}

	err := s.userRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}
