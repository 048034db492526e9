package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	jwtService := &JWTService{}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(UserIDKey).(int)
		role, _ := r.Context().Value(RoleKey).(string)
		assert.Equal(t, 42, userID)
		assert.Equal(t, "merchant", role)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name         string
		authHeader   func() string
		expectedCode int
	}{
		{
			name: "Valid Token",
			authHeader: func() string {
				token, _ := jwtService.GenerateJWT(42, "merchant", time.Now().Add(time.Hour))
				return "Bearer " + token
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Missing Header",
			authHeader:   func() string { return "" },
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Not A Bearer Token",
			authHeader:   func() string { return "Basic abcdef" },
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Invalid Token",
			authHeader:   func() string { return "Bearer invalid.token.string" },
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/user/balance", nil)
			if header := tt.authHeader(); header != "" {
				r.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			AuthMiddleware(next).ServeHTTP(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	jwtService := &JWTService{}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name         string
		role         string
		required     string
		expectedCode int
	}{
		{
			name:         "Role Allowed",
			role:         "admin",
			required:     "admin",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Role Forbidden",
			role:         "client",
			required:     "admin",
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _ := jwtService.GenerateJWT(42, tt.role, time.Now().Add(time.Hour))
			r := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			r.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			AuthMiddleware(RequireRole(tt.required)(next)).ServeHTTP(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
