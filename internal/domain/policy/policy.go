// Package policy is the single place where role and ownership rules live.
// Every function is pure: no I/O, no globals. A false result is a deny.
package policy

import (
	"github.com/BruksfildServices01/barbershop-api/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

// Caller is the authenticated actor, built once from verified token claims.
type Caller struct {
	UserID        uint
	Role          Role
	AdminOverride bool
}

func (c Caller) elevated() bool {
	return c.Role == RoleAdmin || c.AdminOverride
}

func CanManageCatalog(c Caller) bool {
	return c.Role == RoleAdmin
}

func CanCreateAppointment(c Caller) bool {
	return c.Role == RoleClient
}

func CanViewAppointment(c Caller, ap *models.Appointment) bool {
	switch c.Role {
	case RoleClient:
		return ap.ClientID == c.UserID
	case RoleBarber:
		return ap.BarberID == c.UserID
	case RoleAdmin:
		return true
	}
	return false
}

// CanTransitionAppointment: admins always, barbers on their own chair,
// clients only cancelling their own booking.
func CanTransitionAppointment(c Caller, ap *models.Appointment, to appointment.Status) bool {
	switch c.Role {
	case RoleAdmin:
		return true
	case RoleBarber:
		return ap.BarberID == c.UserID
	case RoleClient:
		return ap.ClientID == c.UserID && to == appointment.StatusCancelled
	}
	return false
}

// CanRecordPayment: ap may be nil for payments not tied to an appointment.
// Barbers are held to their own chair even when flagged.
func CanRecordPayment(c Caller, ap *models.Appointment) bool {
	if c.Role == RoleBarber {
		return ap == nil || ap.BarberID == c.UserID
	}
	return c.elevated()
}

func CanListAllAppointments(c Caller) bool {
	return c.Role == RoleBarber || c.elevated()
}

func CanDeleteAppointment(c Caller) bool {
	return c.elevated()
}

func CanManageUsers(c Caller) bool {
	return c.elevated()
}

func CanViewSales(c Caller) bool {
	return c.elevated()
}

func CanStartCheckout(c Caller, ap *models.Appointment) bool {
	return c.Role == RoleClient && ap.ClientID == c.UserID
}

// CanStartDirectCheckout covers paying for a service without a booking.
func CanStartDirectCheckout(c Caller) bool {
	return c.Role == RoleClient
}

func CanViewAuditLog(c Caller) bool {
	return c.elevated()
}
