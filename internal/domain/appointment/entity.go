package appointment

import (
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func SetStatus(ap *models.Appointment, to Status, table TransitionTable) error {
	from := Status(ap.Status)
	if !table.Allowed(from, to) {
		return httperr.Validation(
			"invalid_transition",
			"Appointment cannot move from "+string(from)+" to "+string(to)+".",
		)
	}

	ap.Status = string(to)
	return nil
}
