package user

import (
	"context"

	"github.com/BruksfildServices01/barbershop-api/internal/auth"
	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

var errInvalidCredentials = httperr.Authentication("invalid_credentials", "Invalid email or password.")

type LoginResult struct {
	Token string       `json:"access_token"`
	User  *models.User `json:"user"`
}

type Login struct {
	repo   domain.Repository
	hasher auth.PasswordHasher
	tokens auth.TokenIssuer
}

func NewLogin(
	repo domain.Repository,
	hasher auth.PasswordHasher,
	tokens auth.TokenIssuer,
) *Login {
	return &Login{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

func (uc *Login) Execute(
	ctx context.Context,
	rawEmail string,
	password string,
) (*LoginResult, error) {

	if rawEmail == "" || password == "" {
		return nil, httperr.Validation("missing_fields", "email and password are required.")
	}

	email, err := domain.NormalizeEmail(rawEmail)
	if err != nil {
		return nil, errInvalidCredentials
	}

	u, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, httperr.FromDB(err, "user_not_found")
	}
	if u == nil || !uc.hasher.Verify(u.PasswordHash, password) {
		return nil, errInvalidCredentials
	}
	if !u.Active {
		return nil, httperr.Forbidden("user_inactive", "This account is disabled.")
	}

	return uc.IssueFor(u)
}

// IssueFor signs a token for an already authenticated user.
func (uc *Login) IssueFor(u *models.User) (*LoginResult, error) {
	token, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, httperr.Storage("token_failed", err)
	}
	return &LoginResult{Token: token, User: u}, nil
}
