package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	userID uuid.UUID
	err    error
}

type stubClaims struct{ userID uuid.UUID }

func (c stubClaims) GetUserID() uuid.UUID { return c.userID }

func (v *stubValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return stubClaims{userID: v.userID}, nil
}

func TestAuth(t *testing.T) {
	userID := uuid.New()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, err := GetUserID(r)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		validator  *stubValidator
		wantStatus int
	}{
		{"no header", "", &stubValidator{userID: userID}, http.StatusUnauthorized},
		{"not bearer", "Basic abc", &stubValidator{userID: userID}, http.StatusUnauthorized},
		{"bearer without token", "Bearer", &stubValidator{userID: userID}, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", &stubValidator{err: fmt.Errorf("invalid")}, http.StatusUnauthorized},
		{"valid token", "Bearer good", &stubValidator{userID: userID}, http.StatusOK},
		{"lowercase bearer", "bearer good", &stubValidator{userID: userID}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(tt.validator)(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetUserIDMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}
