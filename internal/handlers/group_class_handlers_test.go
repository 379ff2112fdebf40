package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"gymapi/internal/models"
)

func (env *testEnv) createClass(t *testing.T, adminToken string, name string, capacity int) models.GroupClass {
	t.Helper()

	rec := env.request(t, http.MethodPost, "/api/groupclass", adminToken, CreateGroupClassRequest{
		Type:        models.ClassYoga,
		Name:        name,
		StartTime:   time.Now().UTC().Add(time.Hour),
		MaxCapacity: capacity,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create class status = %d; body %s", rec.Code, rec.Body.String())
	}
	var class models.GroupClass
	decodeInto(t, rec, &class)
	return class
}

func (env *testEnv) createMemberProfile(t *testing.T, adminToken string, userID uint) {
	t.Helper()

	rec := env.request(t, http.MethodPost, "/api/member", adminToken, CreateMemberRequest{UserID: userID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create member status = %d; body %s", rec.Code, rec.Body.String())
	}
}

func TestEnrollMaintainsCounter(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	alice := env.createUser(t, "Alice", "alice@example.com", models.RoleMember)
	adminToken := env.tokenFor(t, admin)
	aliceToken := env.tokenFor(t, alice)
	env.createMemberProfile(t, adminToken, alice.ID)

	class := env.createClass(t, adminToken, "Morning Yoga", 10)
	enrollPath := fmt.Sprintf("/api/groupclass/%d/enroll", class.ID)
	classPath := fmt.Sprintf("/api/groupclass/%d", class.ID)

	rec := env.request(t, http.MethodPost, enrollPath, aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("enroll status = %d; body %s", rec.Code, rec.Body.String())
	}

	rec = env.request(t, http.MethodGet, classPath, aliceToken, nil)
	var after models.GroupClass
	decodeInto(t, rec, &after)
	if after.CurrentEnrollment != 1 {
		t.Errorf("enrollment after enroll = %d; want 1", after.CurrentEnrollment)
	}

	// Enrolling twice conflicts and leaves the counter alone.
	rec = env.request(t, http.MethodPost, enrollPath, aliceToken, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate enroll status = %d; want 409", rec.Code)
	}

	rec = env.request(t, http.MethodDelete, enrollPath, aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unenroll status = %d; body %s", rec.Code, rec.Body.String())
	}

	rec = env.request(t, http.MethodGet, classPath, aliceToken, nil)
	decodeInto(t, rec, &after)
	if after.CurrentEnrollment != 0 {
		t.Errorf("enrollment after unenroll = %d; want 0", after.CurrentEnrollment)
	}

	// Unenrolling when not on the roster conflicts.
	rec = env.request(t, http.MethodDelete, enrollPath, aliceToken, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("unenroll while not enrolled status = %d; want 409", rec.Code)
	}
}

func TestEnrollRespectsCapacity(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	alice := env.createUser(t, "Alice", "alice@example.com", models.RoleMember)
	bob := env.createUser(t, "Bob", "bob@example.com", models.RoleMember)
	adminToken := env.tokenFor(t, admin)
	env.createMemberProfile(t, adminToken, alice.ID)
	env.createMemberProfile(t, adminToken, bob.ID)

	class := env.createClass(t, adminToken, "Tiny Class", 1)
	enrollPath := fmt.Sprintf("/api/groupclass/%d/enroll", class.ID)

	rec := env.request(t, http.MethodPost, enrollPath, env.tokenFor(t, alice), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("first enroll status = %d; body %s", rec.Code, rec.Body.String())
	}

	rec = env.request(t, http.MethodPost, enrollPath, env.tokenFor(t, bob), nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("enroll into full class status = %d; want 409", rec.Code)
	}
}

func TestEnrollRequiresMemberProfile(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	alice := env.createUser(t, "Alice", "alice@example.com", models.RoleMember)
	adminToken := env.tokenFor(t, admin)

	class := env.createClass(t, adminToken, "Evening Spin", 5)
	enrollPath := fmt.Sprintf("/api/groupclass/%d/enroll", class.ID)

	// Alice has the member role but no member row yet.
	rec := env.request(t, http.MethodPost, enrollPath, env.tokenFor(t, alice), nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("enroll without profile status = %d; want 400", rec.Code)
	}

	// Admins are locked out by role before any lookup.
	rec = env.request(t, http.MethodPost, enrollPath, adminToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("admin enroll status = %d; want 403", rec.Code)
	}

	rec = env.request(t, http.MethodPost, "/api/groupclass/9999/enroll", env.tokenFor(t, alice), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("enroll into unknown class status = %d; want 404", rec.Code)
	}
}

func TestUpdateGroupClassLeavesEnrollmentAlone(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	alice := env.createUser(t, "Alice", "alice@example.com", models.RoleMember)
	adminToken := env.tokenFor(t, admin)
	aliceToken := env.tokenFor(t, alice)
	env.createMemberProfile(t, adminToken, alice.ID)

	class := env.createClass(t, adminToken, "Morning Yoga", 10)
	classPath := fmt.Sprintf("/api/groupclass/%d", class.ID)

	rec := env.request(t, http.MethodPost, classPath+"/enroll", aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("enroll status = %d; body %s", rec.Code, rec.Body.String())
	}

	rec = env.request(t, http.MethodPut, classPath, adminToken, UpdateGroupClassRequest{
		ID:          class.ID,
		Type:        models.ClassPilates,
		Name:        "Morning Pilates",
		StartTime:   class.StartTime,
		MaxCapacity: 12,
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update status = %d; body %s", rec.Code, rec.Body.String())
	}

	// The rename landed but the counter column stayed with the
	// enroll/unenroll operations.
	var stored models.GroupClass
	if err := env.db.First(&stored, class.ID).Error; err != nil {
		t.Fatalf("load class: %v", err)
	}
	if stored.Name != "Morning Pilates" || stored.MaxCapacity != 12 {
		t.Errorf("update not applied: name=%q capacity=%d", stored.Name, stored.MaxCapacity)
	}
	if stored.CurrentEnrollment != 1 {
		t.Errorf("enrollment after update = %d; want 1", stored.CurrentEnrollment)
	}

	// The roster survived too.
	rec = env.request(t, http.MethodPost, classPath+"/enroll", aliceToken, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("re-enroll status = %d; want 409", rec.Code)
	}
}

func TestDeletedClassLeavesList(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	adminToken := env.tokenFor(t, admin)

	kept := env.createClass(t, adminToken, "Kept", 10)
	doomed := env.createClass(t, adminToken, "Doomed", 10)

	rec := env.request(t, http.MethodDelete, fmt.Sprintf("/api/groupclass/%d", doomed.ID), adminToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete class status = %d; body %s", rec.Code, rec.Body.String())
	}

	rec = env.request(t, http.MethodGet, "/api/groupclass", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list classes status = %d", rec.Code)
	}
	var classes []models.GroupClass
	decodeInto(t, rec, &classes)
	if len(classes) != 1 || classes[0].ID != kept.ID {
		t.Errorf("list = %+v; want only class %d", classes, kept.ID)
	}

	rec = env.request(t, http.MethodGet, fmt.Sprintf("/api/groupclass/%d", doomed.ID), adminToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get deleted class status = %d; want 404", rec.Code)
	}
}

func TestCreateGroupClassValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	adminToken := env.tokenFor(t, admin)

	rec := env.request(t, http.MethodPost, "/api/groupclass", adminToken, CreateGroupClassRequest{
		Type:        "Underwater Basket Weaving",
		Name:        "Nope",
		MaxCapacity: 5,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid type status = %d; want 400", rec.Code)
	}

	rec = env.request(t, http.MethodPost, "/api/groupclass", adminToken, CreateGroupClassRequest{
		Type: models.ClassHIIT,
		Name: "Zero Cap",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-positive capacity status = %d; want 400", rec.Code)
	}

	rec = env.request(t, http.MethodPost, "/api/groupclass", adminToken, CreateGroupClassRequest{
		Type:         models.ClassHIIT,
		Name:         "Ghost Trainer",
		MaxCapacity:  5,
		InstructorID: ptr(uint(9999)),
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown instructor status = %d; want 400", rec.Code)
	}
}
