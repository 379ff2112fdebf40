package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"gymapi/internal/models"
)

func TestCreateMemberValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	alice := env.createUser(t, "Alice", "alice@example.com", models.RoleMember)
	adminToken := env.tokenFor(t, admin)

	tests := []struct {
		name       string
		body       CreateMemberRequest
		wantStatus int
	}{
		{
			name:       "unknown user",
			body:       CreateMemberRequest{UserID: 9999},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown instructor",
			body:       CreateMemberRequest{UserID: alice.ID, InstructorID: ptr(uint(9999))},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "valid",
			body:       CreateMemberRequest{UserID: alice.ID},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate link conflicts",
			body:       CreateMemberRequest{UserID: alice.ID},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.request(t, http.MethodPost, "/api/member", adminToken, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d; want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestDeleteMemberCascadesToUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	alice := env.createUser(t, "Alice", "alice@example.com", models.RoleMember)
	adminToken := env.tokenFor(t, admin)

	rec := env.request(t, http.MethodPost, "/api/member", adminToken, CreateMemberRequest{UserID: alice.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create member status = %d; body %s", rec.Code, rec.Body.String())
	}
	var member models.Member
	decodeInto(t, rec, &member)

	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/member/%d", member.ID), adminToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete member status = %d; body %s", rec.Code, rec.Body.String())
	}

	// The user was soft-deleted, not the member row.
	var storedUser models.User
	if err := env.db.First(&storedUser, alice.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if !storedUser.IsDeleted || storedUser.DeletedAt == nil {
		t.Errorf("user IsDeleted=%v DeletedAt=%v; want both set", storedUser.IsDeleted, storedUser.DeletedAt)
	}

	var storedMember models.Member
	if err := env.db.First(&storedMember, member.ID).Error; err != nil {
		t.Fatalf("member row removed: %v", err)
	}

	// Visibility cascades through the user.
	rec = env.request(t, http.MethodGet, "/api/member", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list members status = %d", rec.Code)
	}
	var members []models.Member
	decodeInto(t, rec, &members)
	if len(members) != 0 {
		t.Errorf("member list length = %d; want 0", len(members))
	}

	rec = env.request(t, http.MethodGet, fmt.Sprintf("/api/member/%d", member.ID), adminToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get member of deleted user status = %d; want 404", rec.Code)
	}

	// The deleted user can no longer log in.
	rec = env.request(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: alice.Email, Password: testPassword})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("login of deleted user status = %d; want 401", rec.Code)
	}
}

func TestInstructorLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	trainer := env.createUser(t, "Trainer", "trainer@example.com", models.RoleInstructor)
	adminToken := env.tokenFor(t, admin)

	rec := env.request(t, http.MethodPost, "/api/instructor", adminToken, CreateInstructorRequest{UserID: trainer.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create instructor status = %d; body %s", rec.Code, rec.Body.String())
	}
	var instructor models.Instructor
	decodeInto(t, rec, &instructor)

	rec = env.request(t, http.MethodPost, "/api/instructor", adminToken, CreateInstructorRequest{UserID: trainer.ID})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate instructor status = %d; want 409", rec.Code)
	}

	rec = env.request(t, http.MethodGet, fmt.Sprintf("/api/instructor/%d", instructor.ID), adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get instructor status = %d", rec.Code)
	}
	var fetched models.Instructor
	decodeInto(t, rec, &fetched)
	if fetched.User.Email != trainer.Email {
		t.Errorf("preloaded user email = %q; want %q", fetched.User.Email, trainer.Email)
	}

	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/instructor/%d", instructor.ID), adminToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete instructor status = %d", rec.Code)
	}

	rec = env.request(t, http.MethodGet, "/api/instructor", adminToken, nil)
	var instructors []models.Instructor
	decodeInto(t, rec, &instructors)
	if len(instructors) != 0 {
		t.Errorf("instructor list length = %d; want 0", len(instructors))
	}
}

func ptr[T any](v T) *T { return &v }
