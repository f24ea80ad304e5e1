package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadsync/timetable-api/internal/models"
	"github.com/acadsync/timetable-api/pkg/config"
	appErrors "github.com/acadsync/timetable-api/pkg/errors"
)

type stubUserRepo struct {
	byEmail   map[string]*models.User
	byID      map[string]*models.User
	lastLogin time.Time
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	s.lastLogin = at
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "timetable-api-test"}
}

func adminFixtureUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	return &models.User{
		ID:           "u1",
		Email:        "admin@example.edu",
		PasswordHash: hash,
		FullName:     "Site Admin",
		Role:         models.RoleAdmin,
		Active:       true,
	}
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	user := adminFixtureUser(t)
	repo := &stubUserRepo{
		byEmail: map[string]*models.User{user.Email: user},
		byID:    map[string]*models.User{user.ID: user},
	}
	service := NewAuthService(repo, nil, nil, testJWTConfig())

	resp, err := service.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	assert.False(t, repo.lastLogin.IsZero())

	claims, err := service.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	user := adminFixtureUser(t)
	repo := &stubUserRepo{byEmail: map[string]*models.User{user.Email: user}}
	service := NewAuthService(repo, nil, nil, testJWTConfig())

	_, err := service.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "wrong"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	service := NewAuthService(&stubUserRepo{}, nil, nil, testJWTConfig())

	_, err := service.Login(context.Background(), models.LoginRequest{Email: "ghost@example.edu", Password: "whatever"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	user := adminFixtureUser(t)
	user.Active = false
	repo := &stubUserRepo{byEmail: map[string]*models.User{user.Email: user}}
	service := NewAuthService(repo, nil, nil, testJWTConfig())

	_, err := service.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "correct-horse"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestAuthServiceValidateTokenRejectsForeignSecret(t *testing.T) {
	user := adminFixtureUser(t)
	repo := &stubUserRepo{byEmail: map[string]*models.User{user.Email: user}}
	issuer := NewAuthService(repo, nil, nil, config.JWTConfig{Secret: "other-secret", Expiration: time.Hour})
	verifier := NewAuthService(repo, nil, nil, testJWTConfig())

	resp, err := issuer.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "correct-horse"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(resp.AccessToken)
	assert.Error(t, err)
}

func TestAuthServiceValidateTokenGarbage(t *testing.T) {
	service := NewAuthService(&stubUserRepo{}, nil, nil, testJWTConfig())
	_, err := service.ValidateToken("not.a.token")
	assert.Error(t, err)
}
