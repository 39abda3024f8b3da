package user

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/barbershop-api/internal/auth"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/mocks"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

var (
	hasher = auth.BcryptHasher{Cost: 4}
	admin  = policy.Caller{UserID: 1, Role: policy.RoleAdmin}
)

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func setup(t *testing.T) (*mocks.Store, *mocks.UserRepository) {
	t.Helper()
	store := mocks.NewStore()
	hash, _ := hasher.Hash("adminpass")
	store.AddUser(models.User{ID: 1, Name: "Admin", Email: "admin@example.com", PasswordHash: hash, Role: "admin", Active: true})
	return store, mocks.NewUserRepository(store)
}

// ======================================================
// Register / login
// ======================================================

func TestRegister_AlwaysClient(t *testing.T) {
	store, repo := setup(t)

	u, err := NewRegisterUser(repo, hasher, nil).Execute(context.Background(), RegisterInput{
		Name:     "  Carla ",
		Email:    " Carla@Example.COM ",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if u.Role != "client" || !u.Active {
		t.Errorf("expected active client, got role=%s active=%v", u.Role, u.Active)
	}
	if u.Email != "carla@example.com" || u.Name != "Carla" {
		t.Errorf("expected normalized fields, got %q %q", u.Email, u.Name)
	}
	if u.PasswordHash == "secret1" || !hasher.Verify(u.PasswordHash, "secret1") {
		t.Errorf("password not hashed")
	}
	if len(store.Audits) != 1 || store.Audits[0].Action != "user_registered" {
		t.Errorf("expected audit row, got %+v", store.Audits)
	}
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name  string
		in    RegisterInput
		check EmailDomainCheck
		code  string
	}{
		{name: "missing", in: RegisterInput{Email: "x@example.com"}, code: "missing_fields"},
		{name: "bad email", in: RegisterInput{Name: "X", Email: "nope", Password: "secret1"}, code: "invalid_email"},
		{name: "duplicate", in: RegisterInput{Name: "X", Email: "ADMIN@example.com", Password: "secret1"}, code: "email_taken"},
		{name: "short password", in: RegisterInput{Name: "X", Email: "x@example.com", Password: "123"}, code: "password_too_short"},
		{
			name:  "dead domain",
			in:    RegisterInput{Name: "X", Email: "x@nowhere.invalid", Password: "secret1"},
			check: func(string) bool { return false },
			code:  "invalid_email_domain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, repo := setup(t)
			_, err := NewRegisterUser(repo, hasher, tt.check).Execute(context.Background(), tt.in)
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestRegister_DuplicateIsConflict(t *testing.T) {
	_, repo := setup(t)

	_, err := NewRegisterUser(repo, hasher, nil).Execute(context.Background(), RegisterInput{
		Name: "X", Email: "admin@example.com", Password: "secret1",
	})

	if httperr.KindOf(err) != httperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	store, repo := setup(t)
	issuer := auth.NewJWTIssuer("secret", time.Hour)
	uc := NewLogin(repo, hasher, issuer)

	res, err := uc.Execute(context.Background(), "Admin@Example.com", "adminpass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	caller, err := issuer.Verify(res.Token)
	if err != nil || caller.UserID != 1 || caller.Role != policy.RoleAdmin {
		t.Fatalf("token does not carry the user: %+v (%v)", caller, err)
	}

	if _, err := uc.Execute(context.Background(), "admin@example.com", "wrong"); !httperr.IsBusiness(err, "invalid_credentials") {
		t.Errorf("expected invalid_credentials, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), "ghost@example.com", "adminpass"); !httperr.IsBusiness(err, "invalid_credentials") {
		t.Errorf("expected invalid_credentials for unknown email, got %v", err)
	}

	u := store.Users[1]
	u.Active = false
	store.Users[1] = u
	if _, err := uc.Execute(context.Background(), "admin@example.com", "adminpass"); !httperr.IsBusiness(err, "user_inactive") {
		t.Errorf("expected user_inactive, got %v", err)
	}
}

// ======================================================
// Profile
// ======================================================

func TestUpdateProfile_RestrictedFields(t *testing.T) {
	store, repo := setup(t)
	u := store.AddUser(models.User{Name: "Bea", Email: "bea@example.com", Role: "barber", Active: true})
	caller := policy.Caller{UserID: u.ID, Role: policy.RoleBarber}

	updated, err := NewUpdateProfile(repo).Execute(context.Background(), caller, domain.ProfileUpdate{
		Name:        strPtr("Beatriz"),
		Bio:         strPtr("fades"),
		Specialties: strPtr("beard"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Name != "Beatriz" || *updated.Bio != "fades" || *updated.Specialties != "beard" {
		t.Errorf("unexpected profile: %+v", updated)
	}
	if updated.Role != "barber" || updated.Email != "bea@example.com" {
		t.Errorf("profile update touched protected fields: %+v", updated)
	}

	if _, err := NewUpdateProfile(repo).Execute(context.Background(), caller, domain.ProfileUpdate{Name: strPtr("  ")}); !httperr.IsBusiness(err, "invalid_name") {
		t.Errorf("expected invalid_name, got %v", err)
	}
}

type memoryStore struct {
	keys []string
	err  error
}

func (m *memoryStore) Put(_ context.Context, key, contentType string, body []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.keys = append(m.keys, key)
	return "https://cdn.test/" + key, nil
}

func TestUpdatePhoto(t *testing.T) {
	store, repo := setup(t)
	objects := &memoryStore{}
	encode := func(r io.Reader) ([]byte, error) {
		b, err := io.ReadAll(r)
		if err != nil || len(b) == 0 {
			return nil, errors.New("empty")
		}
		return b, nil
	}
	uc := NewUpdatePhoto(repo, objects, encode)

	u, err := uc.Execute(context.Background(), admin, bytes.NewBufferString("img"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.PhotoURL == nil || !strings.HasPrefix(*u.PhotoURL, "https://cdn.test/profiles/1/") {
		t.Errorf("unexpected photo url: %v", u.PhotoURL)
	}
	if store.Users[1].PhotoURL == nil {
		t.Errorf("photo url not persisted")
	}

	if _, err := uc.Execute(context.Background(), admin, bytes.NewBuffer(nil)); !httperr.IsBusiness(err, "invalid_image") {
		t.Errorf("expected invalid_image, got %v", err)
	}

	objects.err = errors.New("s3 down")
	if _, err := uc.Execute(context.Background(), admin, bytes.NewBufferString("img")); httperr.KindOf(err) != httperr.KindStorage {
		t.Errorf("expected storage error, got %v", err)
	}

	if _, err := NewUpdatePhoto(repo, nil, encode).Execute(context.Background(), admin, bytes.NewBufferString("img")); !httperr.IsBusiness(err, "storage_disabled") {
		t.Errorf("expected storage_disabled, got %v", err)
	}
}

// ======================================================
// Admin
// ======================================================

func TestManageUsers_Create(t *testing.T) {
	_, repo := setup(t)
	uc := NewManageUsers(repo, hasher, nil)

	u, err := uc.Create(context.Background(), admin, AdminCreateInput{
		Name: "Bruno", Email: "bruno@example.com", Password: "secret1", Role: "barber", IsAdmin: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Role != "barber" || !u.HasAdminOverride() {
		t.Errorf("unexpected user: %+v", u)
	}

	if _, err := uc.Create(context.Background(), admin, AdminCreateInput{
		Name: "X", Email: "x@example.com", Password: "secret1", Role: "owner",
	}); !httperr.IsBusiness(err, "invalid_role") {
		t.Errorf("expected invalid_role, got %v", err)
	}

	client := policy.Caller{UserID: u.ID, Role: policy.RoleClient}
	if _, err := uc.Create(context.Background(), client, AdminCreateInput{}); httperr.KindOf(err) != httperr.KindForbidden {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestManageUsers_Update(t *testing.T) {
	store, repo := setup(t)
	target := store.AddUser(models.User{Name: "Cid", Email: "cid@example.com", Role: "client", Active: true})
	uc := NewManageUsers(repo, hasher, nil)

	u, err := uc.Update(context.Background(), admin, target.ID, domain.AdminUpdate{
		Email:    strPtr("CID2@example.com"),
		Role:     strPtr("barber"),
		Active:   boolPtr(false),
		Password: strPtr("newpass1"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "cid2@example.com" || u.Role != "barber" || u.Active {
		t.Errorf("unexpected user: %+v", u)
	}
	if !hasher.Verify(store.Users[target.ID].PasswordHash, "newpass1") {
		t.Errorf("password not updated")
	}

	if _, err := uc.Update(context.Background(), admin, target.ID, domain.AdminUpdate{Email: strPtr("admin@example.com")}); !httperr.IsBusiness(err, "email_taken") {
		t.Errorf("expected email_taken, got %v", err)
	}
	if _, err := uc.Update(context.Background(), admin, 999, domain.AdminUpdate{}); httperr.KindOf(err) != httperr.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestManageUsers_DeleteCascadesAppointments(t *testing.T) {
	store, repo := setup(t)
	barber := store.AddUser(models.User{Name: "B", Email: "b@example.com", Role: "barber", Active: true})
	client := store.AddUser(models.User{Name: "C", Email: "c@example.com", Role: "client", Active: true})
	svc := store.AddService(models.Service{Name: "Cut", Price: 20})
	store.AddAppointment(models.Appointment{ClientID: client.ID, BarberID: barber.ID, ServiceID: svc.ID, Status: "pending"})
	store.AddAppointment(models.Appointment{ClientID: client.ID, BarberID: 1, ServiceID: svc.ID, Status: "pending"})
	kept := store.AddAppointment(models.Appointment{ClientID: 1, BarberID: 1, ServiceID: svc.ID, Status: "pending"})

	if err := NewManageUsers(repo, hasher, nil).Delete(context.Background(), admin, client.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := store.Users[client.ID]; ok {
		t.Errorf("user still present")
	}
	if len(store.Appointments) != 1 {
		t.Fatalf("expected only the unrelated appointment to survive, got %d", len(store.Appointments))
	}
	if _, ok := store.Appointments[kept.ID]; !ok {
		t.Errorf("unrelated appointment removed")
	}
}

func TestManageUsers_DeleteRollsBack(t *testing.T) {
	store, repo := setup(t)
	client := store.AddUser(models.User{Name: "C", Email: "c@example.com", Role: "client"})
	store.AddAppointment(models.Appointment{ClientID: client.ID, BarberID: 1, ServiceID: 1, Status: "pending"})

	repo.DeleteFunc = func(context.Context, uint) error { return errors.New("db gone") }

	err := NewManageUsers(repo, hasher, nil).Delete(context.Background(), admin, client.ID)
	if httperr.KindOf(err) != httperr.KindStorage {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(store.Appointments) != 1 {
		t.Errorf("appointments deleted despite rollback")
	}
}

func TestManageUsers_DeleteGuards(t *testing.T) {
	_, repo := setup(t)
	uc := NewManageUsers(repo, hasher, nil)

	if err := uc.Delete(context.Background(), admin, admin.UserID); !httperr.IsBusiness(err, "cannot_delete_self") {
		t.Errorf("expected cannot_delete_self, got %v", err)
	}
	if err := uc.Delete(context.Background(), admin, 999); httperr.KindOf(err) != httperr.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
	flagged := policy.Caller{UserID: 50, Role: policy.RoleBarber, AdminOverride: true}
	if err := uc.Delete(context.Background(), flagged, 999); httperr.KindOf(err) != httperr.KindNotFound {
		t.Errorf("expected override to pass the policy, got %v", err)
	}
}

func TestListBarbers(t *testing.T) {
	store, repo := setup(t)
	store.AddUser(models.User{Name: "B", Email: "b@example.com", Role: "barber", Active: true})
	store.AddUser(models.User{Name: "Gone", Email: "g@example.com", Role: "barber", Active: false})
	store.AddUser(models.User{Name: "C", Email: "c@example.com", Role: "client", Active: true})

	barbers, err := NewListBarbers(repo).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(barbers) != 2 {
		t.Fatalf("expected admin and active barber, got %d", len(barbers))
	}
}

func TestSeedAdmin(t *testing.T) {
	store := mocks.NewStore()
	repo := mocks.NewUserRepository(store)

	u, created, err := SeedAdmin(context.Background(), repo, hasher, "root@example.com", "rootpass")
	if err != nil || !created || u.Role != "admin" {
		t.Fatalf("first seed: created=%v err=%v user=%+v", created, err, u)
	}

	again, created, err := SeedAdmin(context.Background(), repo, hasher, "root@example.com", "other")
	if err != nil || created || again.ID != u.ID {
		t.Fatalf("second seed must be a no-op: created=%v err=%v", created, err)
	}
}
