package user

import (
	"github.com/BruksfildServices01/barbershop-api/internal/auth"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
)

var (
	errEmailTaken    = httperr.Conflict("email_taken", "A user with this email already exists.")
	errManageUsers   = httperr.Forbidden("forbidden", "Only admins can manage users.")
	errShortPassword = httperr.Validation("password_too_short", "Password must have at least 6 characters.")
	errEmailDomain   = httperr.Validation("invalid_email_domain", "Email domain does not accept mail.")
)

// EmailDomainCheck reports whether an email's domain can receive mail.
type EmailDomainCheck func(email string) bool

func hashPassword(h auth.PasswordHasher, plain string) (string, error) {
	hashed, err := h.Hash(plain)
	if err == auth.ErrPasswordTooShort {
		return "", errShortPassword
	}
	if err != nil {
		return "", httperr.Storage("hash_failed", err)
	}
	return hashed, nil
}

// persistErr maps a unique violation on users to email_taken.
func persistErr(err error) error {
	if httperr.IsUniqueViolation(err) {
		return errEmailTaken
	}
	return httperr.FromDB(err, "user_not_found")
}
