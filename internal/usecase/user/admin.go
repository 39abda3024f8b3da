package user

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barbershop-api/internal/audit"
	"github.com/BruksfildServices01/barbershop-api/internal/auth"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type AdminCreateInput struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	IsAdmin     *bool   `json:"is_admin"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Bio         *string `json:"bio"`
	Specialties *string `json:"specialties"`
	PhotoURL    *string `json:"photo_url"`
}

// ======================================================
// USE CASE
// ======================================================

// ManageUsers groups the admin user operations.
type ManageUsers struct {
	repo        domain.Repository
	hasher      auth.PasswordHasher
	checkDomain EmailDomainCheck
}

func NewManageUsers(
	repo domain.Repository,
	hasher auth.PasswordHasher,
	checkDomain EmailDomainCheck,
) *ManageUsers {
	return &ManageUsers{
		repo:        repo,
		hasher:      hasher,
		checkDomain: checkDomain,
	}
}

func parseRole(raw string) (policy.Role, error) {
	role := policy.Role(strings.ToLower(strings.TrimSpace(raw)))
	if role == "" {
		return policy.RoleClient, nil
	}
	if !role.Valid() {
		return "", httperr.Validation("invalid_role", "role must be one of client, barber, admin.")
	}
	return role, nil
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (uc *ManageUsers) Create(
	ctx context.Context,
	caller policy.Caller,
	in AdminCreateInput,
) (*models.User, error) {

	if !policy.CanManageUsers(caller) {
		return nil, errManageUsers
	}

	role, err := parseRole(in.Role)
	if err != nil {
		return nil, err
	}

	u, err := newUser(ctx, uc.repo, uc.hasher, uc.checkDomain, in.Name, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}
	u.IsAdmin = in.IsAdmin
	u.Phone = in.Phone
	u.Address = in.Address
	u.Bio = in.Bio
	u.Specialties = in.Specialties
	u.PhotoURL = in.PhotoURL

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.Create(ctx, u); err != nil {
			return persistErr(err)
		}
		return audit.Record(ctx, tx, audit.Event{
			UserID:   &caller.UserID,
			Action:   "user_created",
			Entity:   "user",
			EntityID: &u.ID,
			Metadata: map[string]string{"role": u.Role},
		})
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// --------------------------------------------------
// Update
// --------------------------------------------------

func (uc *ManageUsers) Update(
	ctx context.Context,
	caller policy.Caller,
	id uint,
	in domain.AdminUpdate,
) (*models.User, error) {

	if !policy.CanManageUsers(caller) {
		return nil, errManageUsers
	}

	var updated *models.User

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		u, err := tx.GetByID(ctx, id)
		if err != nil {
			return httperr.FromDB(err, "user_not_found")
		}

		if err := applyProfile(u, in.ProfileUpdate); err != nil {
			return err
		}

		if in.Email != nil {
			email, err := domain.NormalizeEmail(*in.Email)
			if err != nil {
				return err
			}
			if email != u.Email {
				if uc.checkDomain != nil && !uc.checkDomain(email) {
					return errEmailDomain
				}
				existing, err := tx.GetByEmail(ctx, email)
				if err != nil {
					return httperr.FromDB(err, "user_not_found")
				}
				if existing != nil {
					return errEmailTaken
				}
				u.Email = email
			}
		}

		if in.Password != nil {
			hashed, err := hashPassword(uc.hasher, *in.Password)
			if err != nil {
				return err
			}
			u.PasswordHash = hashed
		}

		if in.Role != nil {
			role, err := parseRole(*in.Role)
			if err != nil {
				return err
			}
			u.Role = string(role)
		}
		if in.Active != nil {
			u.Active = *in.Active
		}
		if in.IsAdmin != nil {
			u.IsAdmin = in.IsAdmin
		}
		if in.PhotoURL != nil {
			u.PhotoURL = in.PhotoURL
		}

		if err := tx.Update(ctx, u); err != nil {
			return persistErr(err)
		}

		updated = u
		return audit.Record(ctx, tx, audit.Event{
			UserID:   &caller.UserID,
			Action:   "user_updated",
			Entity:   "user",
			EntityID: &u.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

// Delete removes the user and every appointment where they are client or barber.
func (uc *ManageUsers) Delete(
	ctx context.Context,
	caller policy.Caller,
	id uint,
) error {

	if !policy.CanManageUsers(caller) {
		return errManageUsers
	}
	if id == caller.UserID {
		return httperr.Validation("cannot_delete_self", "You cannot delete your own account.")
	}

	return uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		u, err := tx.GetByID(ctx, id)
		if err != nil {
			return httperr.FromDB(err, "user_not_found")
		}

		removed, err := tx.DeleteAppointmentsOf(ctx, u.ID)
		if err != nil {
			return httperr.FromDB(err, "user_not_found")
		}

		if err := tx.Delete(ctx, u.ID); err != nil {
			return httperr.FromDB(err, "user_not_found")
		}

		return audit.Record(ctx, tx, audit.Event{
			UserID:   &caller.UserID,
			Action:   "user_deleted",
			Entity:   "user",
			EntityID: &u.ID,
			Metadata: map[string]any{
				"email":                u.Email,
				"appointments_removed": removed,
			},
		})
	})
}

// --------------------------------------------------
// List
// --------------------------------------------------

func (uc *ManageUsers) List(
	ctx context.Context,
	caller policy.Caller,
) ([]models.User, error) {

	if !policy.CanManageUsers(caller) {
		return nil, errManageUsers
	}

	users, err := uc.repo.List(ctx, domain.ListFilter{})
	if err != nil {
		return nil, httperr.FromDB(err, "user_not_found")
	}
	return users, nil
}

// ======================================================
// BARBERS
// ======================================================

type ListBarbers struct {
	repo domain.Repository
}

func NewListBarbers(repo domain.Repository) *ListBarbers {
	return &ListBarbers{repo: repo}
}

// Execute lists everyone who can be booked, active accounts only.
func (uc *ListBarbers) Execute(ctx context.Context) ([]models.User, error) {
	users, err := uc.repo.List(ctx, domain.ListFilter{
		Roles: []string{string(policy.RoleBarber), string(policy.RoleAdmin)},
	})
	if err != nil {
		return nil, httperr.FromDB(err, "user_not_found")
	}

	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

// ======================================================
// SEED
// ======================================================

// SeedAdmin creates the first admin when the email is unused. It is a no-op otherwise.
func SeedAdmin(
	ctx context.Context,
	repo domain.Repository,
	hasher auth.PasswordHasher,
	email string,
	password string,
) (*models.User, bool, error) {

	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, false, err
	}

	existing, err := repo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, false, httperr.FromDB(err, "user_not_found")
	}
	if existing != nil {
		return existing, false, nil
	}

	u, err := newUser(ctx, repo, hasher, nil, "Admin", normalized, password, policy.RoleAdmin)
	if err != nil {
		return nil, false, err
	}

	if err := repo.Create(ctx, u); err != nil {
		return nil, false, persistErr(err)
	}
	return u, true, nil
}
