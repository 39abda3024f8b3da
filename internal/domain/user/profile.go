package user

import (
	"net/mail"
	"strings"

	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
)

// NormalizeEmail lower-cases and trims; it rejects anything net/mail cannot parse.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", httperr.Validation("invalid_email", "Email is not valid.")
	}
	return email, nil
}

// ProfileUpdate is the restricted field set a user may change on themselves.
type ProfileUpdate struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Bio         *string `json:"bio"`
	Specialties *string `json:"specialties"`
}

// AdminUpdate is the full field set available to admins.
type AdminUpdate struct {
	ProfileUpdate
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Active   *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
	PhotoURL *string `json:"photo_url"`
}
