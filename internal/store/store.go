package store

import (
	"context"
	"errors"
	"time"

	"github.com/quietstudy/studytrack/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	InviteCodes() InviteCodes
	Subjects() Subjects
	StudySessions() StudySessions
	WordLogs() WordLogs
	Goals() Goals

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle multi-step writes (e.g. registration, which
	// must create the user and consume the invite code atomically).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login, refresh and registration checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A duplicate email surfaces as ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error
}

type InviteCodes interface {
	// CreateInviteCode writes a new code. A duplicate code string surfaces
	// as ErrAlreadyExists so the caller can regenerate.
	CreateInviteCode(ctx context.Context, inv domain.InviteCode) error

	// GetInviteCodeByCode returns the record for a code string.
	GetInviteCodeByCode(ctx context.Context, code string) (domain.InviteCode, error)

	// ConsumeInviteCode claims the code for usedBy iff it is still
	// unconsumed: a single conditional UPDATE ... WHERE used_by IS NULL.
	// Zero rows affected surfaces as ErrNotFound, which for a code known to
	// exist means it was consumed concurrently.
	ConsumeInviteCode(ctx context.Context, code string, usedBy string, usedAt time.Time) error
}

type Subjects interface {
	// ListActiveSubjects returns the user's non-archived subjects,
	// newest first.
	ListActiveSubjects(ctx context.Context, userID string) ([]domain.Subject, error)

	// GetSubjectByID returns a subject by id regardless of owner; callers
	// enforce ownership.
	GetSubjectByID(ctx context.Context, id string) (domain.Subject, error)

	CreateSubject(ctx context.Context, s domain.Subject) error

	// UpdateSubject writes back every mutable column of s.
	UpdateSubject(ctx context.Context, s domain.Subject) error

	DeleteSubject(ctx context.Context, id string) error
}

type StudySessions interface {
	CreateStudySession(ctx context.Context, s domain.StudySession) error

	// ListStudySessions returns the user's sessions with start_time in
	// [from, to), ascending by start time.
	ListStudySessions(ctx context.Context, userID string, from, to time.Time) ([]domain.StudySession, error)

	// DeleteStudySessionsBySubject removes every session for a subject
	// (subject delete cascade).
	DeleteStudySessionsBySubject(ctx context.Context, subjectID string) error
}

type WordLogs interface {
	CreateWordLog(ctx context.Context, wl domain.WordLog) error

	// ListWordLogs returns the user's logs with date in [from, to],
	// ascending by date. Dates are "2006-01-02" strings.
	ListWordLogs(ctx context.Context, userID string, from, to string) ([]domain.WordLog, error)

	// DeleteWordLogsBySubject removes every log for a subject.
	DeleteWordLogsBySubject(ctx context.Context, subjectID string) error
}

type Goals interface {
	// GetGoalByUser returns the user's goal row, or ErrNotFound before
	// first access.
	GetGoalByUser(ctx context.Context, userID string) (domain.Goal, error)

	CreateGoal(ctx context.Context, g domain.Goal) error

	// UpdateGoal sets both targets and bumps updated_at.
	UpdateGoal(ctx context.Context, g domain.Goal) error
}
