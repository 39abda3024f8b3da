package appointment

import "github.com/BruksfildServices01/barbershop-api/internal/httperr"

// lookupErr turns a missing referenced row into the given validation error.
func lookupErr(err error, missing error) error {
	err = httperr.FromDB(err, "not_found")
	if httperr.KindOf(err) == httperr.KindNotFound {
		return missing
	}
	return err
}

var errForbidden = httperr.Forbidden("forbidden", "You are not allowed to perform this action.")
