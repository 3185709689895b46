package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/relistlabs/relist-backend/pkg/db/models"
	pkgerrors "github.com/relistlabs/relist-backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

func mustCreateUser(t *testing.T, conn *gorm.DB, email, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: "x",
	}
	require.NoError(t, conn.Create(user).Error)
	return user
}

func buildProfileService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func strPtr(v string) *string { return &v }

func TestGetProfileOmitsPasswordHash(t *testing.T) {
	conn := openTestDB(t)
	user := mustCreateUser(t, conn, "seller@example.com", "seller")
	svc := buildProfileService(t, conn)

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, profile.ID)
	require.Equal(t, "seller@example.com", profile.Email)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc := buildProfileService(t, openTestDB(t))

	_, err := svc.GetProfile(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateProfilePartial(t *testing.T) {
	conn := openTestDB(t)
	user := mustCreateUser(t, conn, "seller@example.com", "seller")
	require.NoError(t, conn.Model(user).Update("full_name", "Original Name").Error)
	svc := buildProfileService(t, conn)

	profile, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		Phone: strPtr("+4512345678"),
	})
	require.NoError(t, err)

	if profile.Phone == nil || *profile.Phone != "+4512345678" {
		t.Fatalf("phone not updated: %v", profile.Phone)
	}
	// Fields absent from the request keep their stored values.
	if profile.FullName == nil || *profile.FullName != "Original Name" {
		t.Fatalf("full name should be untouched, got %v", profile.FullName)
	}
	require.Equal(t, "seller", profile.Username)
}

func TestUpdateProfileUsernameTaken(t *testing.T) {
	conn := openTestDB(t)
	mustCreateUser(t, conn, "first@example.com", "original")
	second := mustCreateUser(t, conn, "second@example.com", "other")
	svc := buildProfileService(t, conn)

	_, err := svc.UpdateProfile(context.Background(), second.ID, UpdateProfileRequest{
		Username: strPtr("original"),
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestUpdateProfileKeepOwnUsername(t *testing.T) {
	conn := openTestDB(t)
	user := mustCreateUser(t, conn, "seller@example.com", "seller")
	svc := buildProfileService(t, conn)

	profile, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileRequest{
		Username: strPtr("seller"),
		FullName: strPtr("Full Name"),
	})
	require.NoError(t, err)
	require.Equal(t, "seller", profile.Username)
}
