package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialhub/internal/auth"
	"socialhub/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Fatal(string, ...interface{}) {}

type fakeUserRepo struct {
	byEmail    *domain.User
	byEmailErr error
	upserted   []*domain.User
}

func (f *fakeUserRepo) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	if f.byEmail != nil {
		return f.byEmail, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpsertUser(ctx context.Context, user *domain.User) error {
	f.upserted = append(f.upserted, user)
	return nil
}

func (f *fakeUserRepo) UpdateOnlineStatus(ctx context.Context, id string, online bool) error {
	return nil
}

type fakeCredentialRepo struct {
	saved map[string]string
}

func (f *fakeCredentialRepo) SaveCredentials(ctx context.Context, userID, passwordHash string) error {
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	f.saved[userID] = passwordHash
	return nil
}

func (f *fakeCredentialRepo) PasswordHash(ctx context.Context, userID string) (string, error) {
	hash, ok := f.saved[userID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return hash, nil
}

func postJSON(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		users      *fakeUserRepo
		body       string
		wantStatus int
	}{
		{
			name:       "new email registers",
			users:      &fakeUserRepo{},
			body:       `{"email":"new@example.com","password":"longenough","firstName":"A","lastName":"B"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "taken email conflicts",
			users:      &fakeUserRepo{byEmail: &domain.User{ID: "u1", Email: "taken@example.com"}},
			body:       `{"email":"taken@example.com","password":"longenough"}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "lookup failure is not treated as a free email",
			users:      &fakeUserRepo{byEmailErr: errors.New("connection refused")},
			body:       `{"email":"new@example.com","password":"longenough"}`,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "short password rejected",
			users:      &fakeUserRepo{},
			body:       `{"email":"new@example.com","password":"short"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(tt.users, &fakeCredentialRepo{},
				auth.NewTokens("test-secret", time.Hour), nopLogger{})

			c, rec := postJSON(tt.body)
			require.NoError(t, h.Register(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusCreated {
				assert.Len(t, tt.users.upserted, 1)
			} else {
				assert.Empty(t, tt.users.upserted, "no user row on a failed registration")
			}
		})
	}
}
