package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mealdrop/mealdrop/internal/logger"
	"github.com/mealdrop/mealdrop/models"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	return &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()}, mock, db
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	wrapped, mock, db := newTestDB(t)
	repo := &userRepository{
		db:     wrapped,
		logger: wrapped.logger,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Email: "john@mealdrop.dev",
		Role:  models.RoleUser,
	}

	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"created_at"}).
		AddRow(now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), user.Email, user.Role).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected generated user id, got uuid.Nil")
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
	if !created.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, created.CreatedAt)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Email: "john@mealdrop.dev", Role: models.RoleUser}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Email: "john@mealdrop.dev", Role: models.RoleUser}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrDatabase) {
		t.Fatalf("expected wrapped ErrDatabase, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "email", "role", "created_at"}).
		AddRow(userID, "john@mealdrop.dev", "courier", now)

	mock.ExpectQuery("SELECT id, email, role, created_at").
		WithArgs("John@MealDrop.dev").
		WillReturnRows(rows)

	found, err := repo.FindUserByEmail(ctx, "John@MealDrop.dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != userID {
		t.Errorf("expected id %s, got %s", userID, found.ID)
	}
	if found.Role != models.RoleCourier {
		t.Errorf("expected role courier, got %s", found.Role)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, email, role, created_at").
		WithArgs("john@mealdrop.dev").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(ctx, "john@mealdrop.dev")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByEmail_UnexpectedError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT id, email, role, created_at").
		WithArgs("john@mealdrop.dev").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByEmail(ctx, "john@mealdrop.dev")
	if !errors.Is(err, ErrDatabase) {
		t.Fatalf("expected wrapped ErrDatabase, got %v", err)
	}
}

func TestFindUserByID_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "email", "role", "created_at"}).
		AddRow(userID, "john@mealdrop.dev", "user", now)

	mock.ExpectQuery("SELECT id, email, role, created_at").
		WithArgs(userID).
		WillReturnRows(rows)

	found, err := repo.FindUserByID(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Email != "john@mealdrop.dev" {
		t.Errorf("expected email john@mealdrop.dev, got %s", found.Email)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery("SELECT id, email, role, created_at").
		WithArgs(userID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(ctx, userID)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}
