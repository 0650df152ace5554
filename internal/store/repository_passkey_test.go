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
	"github.com/mealdrop/mealdrop/models"
)

func newTestPasskeyRepo(t *testing.T) (*passkeyRepository, sqlmock.Sqlmock, *sql.DB) {
	wrapped, mock, db := newTestDB(t)
	repo := &passkeyRepository{
		db:     wrapped,
		logger: wrapped.logger,
	}
	return repo, mock, db
}

func TestCreatePasskey_Success(t *testing.T) {
	repo, mock, db := newTestPasskeyRepo(t)
	defer db.Close()

	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "created_at"}).
		AddRow(int64(11), now)

	mock.ExpectQuery("INSERT INTO user_passkeys").
		WithArgs(userID, "challenge-b64").
		WillReturnRows(rows)

	created, err := repo.CreatePasskey(ctx, models.PasskeyCredential{UserID: userID, Challenge: "challenge-b64"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 11 {
		t.Errorf("expected id 11, got %d", created.ID)
	}
}

func TestFindPasskeyByUserID_WithoutAuthenticator(t *testing.T) {
	repo, mock, db := newTestPasskeyRepo(t)
	defer db.Close()

	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "challenge", "credential_id", "created_at", "a_id", "a_credential_id", "a_public_key", "a_counter"}).
		AddRow(int64(11), userID, "challenge-b64", "", now, nil, nil, nil, nil)

	mock.ExpectQuery("SELECT (.+) FROM user_passkeys").
		WithArgs(userID).
		WillReturnRows(rows)

	found, err := repo.FindPasskeyByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Registered() {
		t.Error("expected no authenticator bound yet")
	}
}

func TestFindPasskeyByUserID_WithAuthenticator(t *testing.T) {
	repo, mock, db := newTestPasskeyRepo(t)
	defer db.Close()

	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "challenge", "credential_id", "created_at", "a_id", "a_credential_id", "a_public_key", "a_counter"}).
		AddRow(int64(11), userID, "challenge-b64", "cred-b64", now, int64(4), []byte{0x01}, []byte{0x02}, int64(9))

	mock.ExpectQuery("SELECT (.+) FROM user_passkeys").
		WithArgs(userID).
		WillReturnRows(rows)

	found, err := repo.FindPasskeyByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.Registered() {
		t.Fatal("expected bound authenticator")
	}
	if found.Authenticator.SignCount != 9 {
		t.Errorf("expected sign count 9, got %d", found.Authenticator.SignCount)
	}
	if found.Authenticator.PasskeyID != 11 {
		t.Errorf("expected passkey id 11, got %d", found.Authenticator.PasskeyID)
	}
}

func TestFindPasskeyByUserID_NotFound(t *testing.T) {
	repo, mock, db := newTestPasskeyRepo(t)
	defer db.Close()

	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM user_passkeys").
		WithArgs(userID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindPasskeyByUserID(ctx, userID)
	if !errors.Is(err, ErrNoPasskeyCredential) {
		t.Fatalf("expected ErrNoPasskeyCredential, got %v", err)
	}
}

func TestUpdatePasskey_ChallengeOnly(t *testing.T) {
	repo, mock, db := newTestPasskeyRepo(t)
	defer db.Close()

	ctx := context.Background()
	userID := uuid.New()
	challenge := "fresh-challenge"

	mock.ExpectExec("UPDATE user_passkeys SET challenge").
		WithArgs(challenge, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePasskey(ctx, models.PasskeyUpdate{UserID: userID, Challenge: &challenge})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdatePasskey_ChallengeAndCredentialID(t *testing.T) {
	repo, mock, db := newTestPasskeyRepo(t)
	defer db.Close()

	ctx := context.Background()
	userID := uuid.New()
	challenge := ""
	credentialID := "cred-b64"

	mock.ExpectExec("UPDATE user_passkeys SET challenge").
		WithArgs(challenge, credentialID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePasskey(ctx, models.PasskeyUpdate{UserID: userID, Challenge: &challenge, CredentialID: &credentialID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdatePasskey_NoFields(t *testing.T) {
	repo, _, db := newTestPasskeyRepo(t)
	defer db.Close()

	err := repo.UpdatePasskey(context.Background(), models.PasskeyUpdate{UserID: uuid.New()})
	if !errors.Is(err, ErrBuildingSQLQuery) {
		t.Fatalf("expected ErrBuildingSQLQuery, got %v", err)
	}
}

func TestUpdatePasskey_NoRow(t *testing.T) {
	repo, mock, db := newTestPasskeyRepo(t)
	defer db.Close()

	ctx := context.Background()
	userID := uuid.New()
	challenge := "fresh-challenge"

	mock.ExpectExec("UPDATE user_passkeys SET challenge").
		WithArgs(challenge, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePasskey(ctx, models.PasskeyUpdate{UserID: userID, Challenge: &challenge})
	if !errors.Is(err, ErrNoPasskeyCredential) {
		t.Fatalf("expected ErrNoPasskeyCredential, got %v", err)
	}
}

func TestCreateAuthenticator_Success(t *testing.T) {
	repo, mock, db := newTestPasskeyRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(4))

	mock.ExpectQuery("INSERT INTO passkeys_authenticators").
		WithArgs(int64(11), []byte{0x01}, []byte{0x02}, uint32(0)).
		WillReturnRows(rows)

	created, err := repo.CreateAuthenticator(ctx, models.PasskeyAuthenticator{
		PasskeyID:    11,
		CredentialID: []byte{0x01},
		PublicKey:    []byte{0x02},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 4 {
		t.Errorf("expected id 4, got %d", created.ID)
	}
}

func TestCreateAuthenticator_AlreadyBound(t *testing.T) {
	repo, mock, db := newTestPasskeyRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO passkeys_authenticators").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateAuthenticator(ctx, models.PasskeyAuthenticator{PasskeyID: 11})
	if !errors.Is(err, ErrAuthenticatorAlreadyBound) {
		t.Fatalf("expected ErrAuthenticatorAlreadyBound, got %v", err)
	}
}

func TestUpdateSignCount_Success(t *testing.T) {
	repo, mock, db := newTestPasskeyRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE passkeys_authenticators").
		WithArgs(int64(11), uint32(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateSignCount(ctx, 11, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
