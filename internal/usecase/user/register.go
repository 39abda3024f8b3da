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

type RegisterInput struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// RegisterUser is self sign-up. The role is always client.
type RegisterUser struct {
	repo        domain.Repository
	hasher      auth.PasswordHasher
	checkDomain EmailDomainCheck
}

func NewRegisterUser(
	repo domain.Repository,
	hasher auth.PasswordHasher,
	checkDomain EmailDomainCheck,
) *RegisterUser {
	return &RegisterUser{
		repo:        repo,
		hasher:      hasher,
		checkDomain: checkDomain,
	}
}

func (uc *RegisterUser) Execute(
	ctx context.Context,
	in RegisterInput,
) (*models.User, error) {

	u, err := newUser(ctx, uc.repo, uc.hasher, uc.checkDomain, in.Name, in.Email, in.Password, policy.RoleClient)
	if err != nil {
		return nil, err
	}
	u.Phone = in.Phone
	u.Address = in.Address

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.Create(ctx, u); err != nil {
			return persistErr(err)
		}
		return audit.Record(ctx, tx, audit.Event{
			UserID:   &u.ID,
			Action:   "user_registered",
			Entity:   "user",
			EntityID: &u.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// newUser validates the shared sign-up fields and builds an unsaved record.
func newUser(
	ctx context.Context,
	repo domain.Repository,
	hasher auth.PasswordHasher,
	checkDomain EmailDomainCheck,
	name, rawEmail, password string,
	role policy.Role,
) (*models.User, error) {

	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(rawEmail) == "" || password == "" {
		return nil, httperr.Validation("missing_fields", "name, email and password are required.")
	}

	email, err := domain.NormalizeEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	if checkDomain != nil && !checkDomain(email) {
		return nil, errEmailDomain
	}

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, httperr.FromDB(err, "user_not_found")
	}
	if existing != nil {
		return nil, errEmailTaken
	}

	hashed, err := hashPassword(hasher, password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         string(role),
		Active:       true,
	}, nil
}
