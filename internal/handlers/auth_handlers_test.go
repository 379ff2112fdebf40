package handlers

import (
	"net/http"
	"testing"
	"time"

	"gymapi/internal/models"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "Taken", "taken@example.com", models.RoleMember)

	deleted := env.createUser(t, "Gone", "gone@example.com", models.RoleMember)
	deleted.MarkDeleted(time.Now().UTC())
	if err := env.db.Save(deleted).Error; err != nil {
		t.Fatalf("soft delete user: %v", err)
	}

	tests := []struct {
		name       string
		body       RegisterRequest
		wantStatus int
	}{
		{
			name:       "new email succeeds",
			body:       RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "email of non-deleted user conflicts",
			body:       RegisterRequest{Name: "Bob", Email: "taken@example.com", Password: "secret123"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "email of soft-deleted user is reusable",
			body:       RegisterRequest{Name: "Carol", Email: "gone@example.com", Password: "secret123"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing password rejected",
			body:       RegisterRequest{Name: "Dave", Email: "dave@example.com"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.request(t, http.MethodPost, "/api/auth/register", "", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d; want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp AuthResponse
			decodeInto(t, rec, &resp)
			if resp.Token == "" {
				t.Error("expected a token in the response")
			}
			if resp.Role != string(models.RoleMember) {
				t.Errorf("role = %q; want Member", resp.Role)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", "alice@example.com", models.RoleMember)

	deleted := env.createUser(t, "Gone", "gone@example.com", models.RoleMember)
	deleted.MarkDeleted(time.Now().UTC())
	if err := env.db.Save(deleted).Error; err != nil {
		t.Fatalf("soft delete user: %v", err)
	}

	rec := env.request(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: user.Email, Password: testPassword})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d; body %s", rec.Code, rec.Body.String())
	}
	var resp AuthResponse
	decodeInto(t, rec, &resp)
	if resp.Role != string(models.RoleMember) {
		t.Errorf("role = %q; want Member", resp.Role)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}

	// Wrong password, unknown email and deleted user must be
	// indistinguishable in both status and message.
	failures := []struct {
		name string
		body LoginRequest
	}{
		{"wrong password", LoginRequest{Email: user.Email, Password: "wrong"}},
		{"unknown email", LoginRequest{Email: "nobody@example.com", Password: testPassword}},
		{"soft-deleted user", LoginRequest{Email: deleted.Email, Password: testPassword}},
	}

	var firstBody string
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.request(t, http.MethodPost, "/api/auth/login", "", tt.body)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d; want 401", rec.Code)
			}
			if firstBody == "" {
				firstBody = rec.Body.String()
			} else if rec.Body.String() != firstBody {
				t.Errorf("message leaks which field was wrong: %q vs %q", rec.Body.String(), firstBody)
			}
		})
	}
}

func TestLogoutIsStateless(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "Alice", "alice@example.com", models.RoleMember)
	token := env.tokenFor(t, user)

	rec := env.request(t, http.MethodPost, "/api/auth/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	// The token still works afterwards.
	rec = env.request(t, http.MethodGet, "/api/groupclass", token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("token invalidated by logout: status = %d", rec.Code)
	}
}
