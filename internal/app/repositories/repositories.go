package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations shared by the pool and a
// transaction. Counter and assignment writes accept it so the assignment
// workflow can run both mutations inside one transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	FacultyRepository    *FacultyRepository
	DepartmentRepository *DepartmentRepository
	ScholarRepository    *ScholarRepository
	SupervisorRepository *SupervisorRepository
	UserRepository       *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		FacultyRepository:    NewFacultyRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		ScholarRepository:    NewScholarRepository(db),
		SupervisorRepository: NewSupervisorRepository(db),
		UserRepository:       NewUserRepository(db),
	}
}
