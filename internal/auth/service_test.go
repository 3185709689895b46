package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/relistlabs/relist-backend/internal/users"
	pkgauth "github.com/relistlabs/relist-backend/pkg/auth"
	"github.com/relistlabs/relist-backend/pkg/config"
	"github.com/relistlabs/relist-backend/pkg/db/models"
	pkgerrors "github.com/relistlabs/relist-backend/pkg/errors"
	"github.com/relistlabs/relist-backend/pkg/security"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "secret",
	Issuer:            "relist-api",
	ExpirationMinutes: 30,
}

type stubUserRepo struct {
	byEmail    map[string]*models.User
	byUsername map[string]*models.User
	created    []*models.User
	createErr  error
}

func newStubUserRepo(existing ...*models.User) *stubUserRepo {
	r := &stubUserRepo{
		byEmail:    map[string]*models.User{},
		byUsername: map[string]*models.User{},
	}
	for _, u := range existing {
		r.byEmail[u.Email] = u
		r.byUsername[u.Username] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	user := dto.ToModel()
	r.byEmail[user.Email] = user
	r.byUsername[user.Username] = user
	r.created = append(r.created, user)
	return user, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := r.byUsername[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.LastLoginAt = &at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func buildTestService(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		JWTConfig:      testJWTConfig,
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func TestServiceRegisterIssuesToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := buildTestService(t, repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Buyer@Example.com",
		Username: "buyer",
		Password: "s3cret-pw",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User == nil || resp.User.Email != "buyer@example.com" {
		t.Fatalf("expected normalized email, got %+v", resp.User)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one user created, got %d", len(repo.created))
	}
	if repo.created[0].PasswordHash == "s3cret-pw" {
		t.Fatalf("password stored in plaintext")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, resp.Token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("expected token subject %s, got %s", resp.User.ID, claims.UserID)
	}
}

func TestServiceRegisterRejectsDuplicateEmail(t *testing.T) {
	existing := &models.User{
		ID:       uuid.New(),
		Email:    "taken@example.com",
		Username: "taken",
	}
	svc := buildTestService(t, newStubUserRepo(existing))

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Username: "someoneelse",
		Password: "pw123456",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceRegisterRejectsDuplicateUsername(t *testing.T) {
	existing := &models.User{
		ID:       uuid.New(),
		Email:    "other@example.com",
		Username: "taken",
	}
	svc := buildTestService(t, newStubUserRepo(existing))

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "fresh@example.com",
		Username: "taken",
		Password: "pw123456",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceLoginVerifiesPassword(t *testing.T) {
	password := "buyer-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "buyer@example.com",
		Username:     "buyer",
		PasswordHash: mustHashPassword(t, password),
	}
	svc := buildTestService(t, newStubUserRepo(user))

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Buyer@example.com",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected token to be set")
	}

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "buyer@example.com",
		Password: "wrong-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for bad password, got %v", err)
	}
}

func TestServiceLoginUnknownEmailIndistinguishable(t *testing.T) {
	svc := buildTestService(t, newStubUserRepo())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("expected generic credentials message, got %q", typed.Message())
	}
}
