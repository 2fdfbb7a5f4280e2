package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/phdportal/internal/app/models"
	appRepos "github.com/yigit/phdportal/internal/app/repositories"
	"github.com/yigit/phdportal/internal/config"
	"github.com/yigit/phdportal/internal/pkg/apperrors"
	"github.com/yigit/phdportal/internal/pkg/auth"
)

// defaultFaculties is the enumerated faculty set with the departments each
// one starts with. Names must match the canonical forms the matching layer
// resolves to.
var defaultFaculties = []struct {
	name        string
	code        string
	departments []string
}{
	{
		name: "Faculty of Engineering & Technology",
		code: "ET",
		departments: []string{
			"Computer Science",
			"Electronics and Communication",
			"Mechanical Engineering",
			"Civil Engineering",
		},
	},
	{
		name: "Faculty of Science and Humanities",
		code: "SH",
		departments: []string{
			"Physics",
			"Chemistry",
			"Mathematics",
			"English",
		},
	},
	{
		name: "Faculty of Medical & Health Sciences",
		code: "MHS",
		departments: []string{
			"Pharmacy",
			"Nursing",
			"Physiotherapy",
		},
	},
	{
		name: "Faculty of Management",
		code: "MGMT",
		departments: []string{
			"Business Administration",
			"Commerce",
		},
	},
}

// CreateDefaultData seeds the faculty tree and the default admin account.
// Every step is idempotent; reruns on startup are expected.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	facultyRepo := appRepos.NewFacultyRepository(dbPool)
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (faculties, departments, admin account)...")
	var finalErr error

	for _, entry := range defaultFaculties {
		faculty := &appModels.Faculty{Name: entry.name, Code: entry.code}
		facultyID, err := facultyRepo.Create(ctx, faculty)
		switch {
		case err == nil:
			lgr.Info().Str("faculty", entry.name).Msg("Faculty created")
		case errors.Is(err, apperrors.ErrResourceAlreadyExists):
			existing, errGet := facultyRepo.GetByCode(ctx, entry.code)
			if errGet != nil {
				lgr.Error().Err(errGet).Str("code", entry.code).Msg("Error looking up existing faculty")
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			facultyID = existing.ID
		default:
			lgr.Error().Err(err).Str("faculty", entry.name).Msg("Error creating faculty")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		for _, departmentName := range entry.departments {
			department := &appModels.Department{FacultyID: facultyID, Name: departmentName}
			exists, errCheck := departmentRepo.ExistsByName(ctx, departmentName, 0)
			if errCheck != nil {
				finalErr = errors.Join(finalErr, errCheck)
				continue
			}
			if exists {
				continue
			}
			if err := departmentRepo.Create(ctx, department); err != nil &&
				!errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
				lgr.Error().Err(err).Str("department", departmentName).Msg("Error creating department")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if err := createDefaultAdmin(ctx, userRepo, cfg, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func createDefaultAdmin(ctx context.Context, userRepo *appRepos.UserRepository, cfg *config.Config, lgr zerolog.Logger) error {
	if _, err := userRepo.GetByEmail(ctx, cfg.Admin.Email); err == nil {
		return nil // already seeded
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &appModels.DepartmentUser{
		Email:    cfg.Admin.Email,
		Password: hashed,
		FullName: "Portal Administrator",
		Role:     appModels.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Str("email", admin.Email).Msg("Default admin account created")
	return nil
}
