package policy

import (
	"testing"

	"github.com/BruksfildServices01/barbershop-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

const (
	clientID = uint(10)
	barberID = uint(20)
	adminID  = uint(30)
	otherID  = uint(99)
)

func booking() *models.Appointment {
	return &models.Appointment{ID: 1, ClientID: clientID, BarberID: barberID, Status: "pending"}
}

func TestCanManageCatalog(t *testing.T) {
	cases := map[Role]bool{RoleAdmin: true, RoleBarber: false, RoleClient: false}
	for role, want := range cases {
		if got := CanManageCatalog(Caller{UserID: 1, Role: role}); got != want {
			t.Errorf("role %s: expected %v, got %v", role, want, got)
		}
	}

	if CanManageCatalog(Caller{UserID: 1, Role: RoleBarber, AdminOverride: true}) {
		t.Error("override must not grant catalog management")
	}
}

func TestCanCreateAppointment(t *testing.T) {
	if !CanCreateAppointment(Caller{UserID: clientID, Role: RoleClient}) {
		t.Error("expected client to book")
	}
	if CanCreateAppointment(Caller{UserID: barberID, Role: RoleBarber}) {
		t.Error("expected barber to be denied")
	}
	if CanCreateAppointment(Caller{UserID: adminID, Role: RoleAdmin}) {
		t.Error("expected admin to be denied")
	}
}

func TestCanViewAppointment(t *testing.T) {
	tests := []struct {
		name   string
		caller Caller
		want   bool
	}{
		{"own client", Caller{UserID: clientID, Role: RoleClient}, true},
		{"other client", Caller{UserID: otherID, Role: RoleClient}, false},
		{"own barber", Caller{UserID: barberID, Role: RoleBarber}, true},
		{"other barber", Caller{UserID: otherID, Role: RoleBarber}, false},
		{"admin", Caller{UserID: adminID, Role: RoleAdmin}, true},
		{"unknown role", Caller{UserID: clientID, Role: Role("guest")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewAppointment(tt.caller, booking()); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCanTransitionAppointment(t *testing.T) {
	tests := []struct {
		name   string
		caller Caller
		to     appointment.Status
		want   bool
	}{
		{"admin any status", Caller{UserID: adminID, Role: RoleAdmin}, appointment.StatusCompleted, true},
		{"admin back to pending", Caller{UserID: adminID, Role: RoleAdmin}, appointment.StatusPending, true},
		{"own barber confirms", Caller{UserID: barberID, Role: RoleBarber}, appointment.StatusConfirmed, true},
		{"own barber completes", Caller{UserID: barberID, Role: RoleBarber}, appointment.StatusCompleted, true},
		{"other barber", Caller{UserID: otherID, Role: RoleBarber}, appointment.StatusConfirmed, false},
		{"own client cancels", Caller{UserID: clientID, Role: RoleClient}, appointment.StatusCancelled, true},
		{"own client completes", Caller{UserID: clientID, Role: RoleClient}, appointment.StatusCompleted, false},
		{"own client re-sets pending", Caller{UserID: clientID, Role: RoleClient}, appointment.StatusPending, false},
		{"other client cancels", Caller{UserID: otherID, Role: RoleClient}, appointment.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransitionAppointment(tt.caller, booking(), tt.to); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCanRecordPayment(t *testing.T) {
	tests := []struct {
		name   string
		caller Caller
		ap     *models.Appointment
		want   bool
	}{
		{"admin", Caller{UserID: adminID, Role: RoleAdmin}, booking(), true},
		{"own barber", Caller{UserID: barberID, Role: RoleBarber}, booking(), true},
		{"other barber", Caller{UserID: otherID, Role: RoleBarber}, booking(), false},
		{"barber without appointment", Caller{UserID: barberID, Role: RoleBarber}, nil, true},
		{"client", Caller{UserID: clientID, Role: RoleClient}, booking(), false},
		{"client with override", Caller{UserID: clientID, Role: RoleClient, AdminOverride: true}, booking(), true},
		{"other barber with override", Caller{UserID: otherID, Role: RoleBarber, AdminOverride: true}, booking(), false},
		{"own barber with override", Caller{UserID: barberID, Role: RoleBarber, AdminOverride: true}, booking(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanRecordPayment(tt.caller, tt.ap); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestElevatedOperations(t *testing.T) {
	admin := Caller{UserID: adminID, Role: RoleAdmin}
	barber := Caller{UserID: barberID, Role: RoleBarber}
	override := Caller{UserID: barberID, Role: RoleBarber, AdminOverride: true}

	if !CanViewSales(admin) || !CanManageUsers(admin) || !CanDeleteAppointment(admin) {
		t.Error("expected admin to be allowed")
	}
	if CanViewSales(barber) || CanManageUsers(barber) || CanDeleteAppointment(barber) {
		t.Error("expected plain barber to be denied")
	}
	if CanViewAuditLog(barber) || !CanViewAuditLog(admin) {
		t.Error("unexpected audit log decision")
	}
	if !CanViewSales(override) || !CanDeleteAppointment(override) || !CanViewAuditLog(override) {
		t.Error("expected override to be allowed")
	}
	if !CanListAllAppointments(barber) || CanListAllAppointments(Caller{UserID: clientID, Role: RoleClient}) {
		t.Error("unexpected list-all decision")
	}
	if !CanListAllAppointments(Caller{UserID: clientID, Role: RoleClient, AdminOverride: true}) {
		t.Error("expected flagged client to list all appointments")
	}
}

func TestCanStartCheckout(t *testing.T) {
	if !CanStartCheckout(Caller{UserID: clientID, Role: RoleClient}, booking()) {
		t.Error("expected owner to check out")
	}
	if CanStartCheckout(Caller{UserID: otherID, Role: RoleClient}, booking()) {
		t.Error("expected other client to be denied")
	}
	if CanStartCheckout(Caller{UserID: barberID, Role: RoleBarber}, booking()) {
		t.Error("expected barber to be denied")
	}
}

func TestCanStartDirectCheckout(t *testing.T) {
	if !CanStartDirectCheckout(Caller{UserID: clientID, Role: RoleClient}) {
		t.Error("expected client to check out")
	}
	if CanStartDirectCheckout(Caller{UserID: adminID, Role: RoleAdmin, AdminOverride: true}) {
		t.Error("expected admin to be denied")
	}
}
