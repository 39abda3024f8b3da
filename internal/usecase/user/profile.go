package user

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-api/internal/audit"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/models"
)

// ======================================================
// GET
// ======================================================

type GetProfile struct {
	repo domain.Repository
}

func NewGetProfile(repo domain.Repository) *GetProfile {
	return &GetProfile{repo: repo}
}

func (uc *GetProfile) Execute(ctx context.Context, caller policy.Caller) (*models.User, error) {
	u, err := uc.repo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, httperr.FromDB(err, "user_not_found")
	}
	return u, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateProfile struct {
	repo domain.Repository
}

func NewUpdateProfile(repo domain.Repository) *UpdateProfile {
	return &UpdateProfile{repo: repo}
}

func (uc *UpdateProfile) Execute(
	ctx context.Context,
	caller policy.Caller,
	in domain.ProfileUpdate,
) (*models.User, error) {

	var updated *models.User

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		u, err := tx.GetByID(ctx, caller.UserID)
		if err != nil {
			return httperr.FromDB(err, "user_not_found")
		}

		if err := applyProfile(u, in); err != nil {
			return err
		}

		if err := tx.Update(ctx, u); err != nil {
			return persistErr(err)
		}

		updated = u
		return audit.Record(ctx, tx, audit.Event{
			UserID:   &caller.UserID,
			Action:   "profile_updated",
			Entity:   "user",
			EntityID: &u.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func applyProfile(u *models.User, in domain.ProfileUpdate) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return httperr.Validation("invalid_name", "name cannot be empty.")
		}
		u.Name = name
	}
	if in.Phone != nil {
		u.Phone = in.Phone
	}
	if in.Address != nil {
		u.Address = in.Address
	}
	if in.Bio != nil {
		u.Bio = in.Bio
	}
	if in.Specialties != nil {
		u.Specialties = in.Specialties
	}
	return nil
}

// ======================================================
// PHOTO
// ======================================================

// ObjectStore keeps uploaded files and returns their public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// ImageEncoder re-encodes an uploaded image for storage.
type ImageEncoder func(r io.Reader) ([]byte, error)

type UpdatePhoto struct {
	repo   domain.Repository
	store  ObjectStore
	encode ImageEncoder
}

func NewUpdatePhoto(
	repo domain.Repository,
	store ObjectStore,
	encode ImageEncoder,
) *UpdatePhoto {
	return &UpdatePhoto{
		repo:   repo,
		store:  store,
		encode: encode,
	}
}

func (uc *UpdatePhoto) Execute(
	ctx context.Context,
	caller policy.Caller,
	photo io.Reader,
) (*models.User, error) {

	if uc.store == nil {
		return nil, httperr.Validation("storage_disabled", "Photo uploads are not configured.")
	}

	body, err := uc.encode(photo)
	if err != nil {
		return nil, httperr.Validation("invalid_image", "Photo must be a PNG, JPEG, GIF or WebP image.")
	}

	u, err := uc.repo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, httperr.FromDB(err, "user_not_found")
	}

	key := fmt.Sprintf("profiles/%d/%s.webp", u.ID, uuid.NewString())
	url, err := uc.store.Put(ctx, key, "image/webp", body)
	if err != nil {
		return nil, httperr.Storage("upload_failed", err)
	}

	u.PhotoURL = &url

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.Update(ctx, u); err != nil {
			return persistErr(err)
		}
		return audit.Record(ctx, tx, audit.Event{
			UserID:   &caller.UserID,
			Action:   "profile_photo_updated",
			Entity:   "user",
			EntityID: &u.ID,
			Metadata: map[string]string{"key": key},
		})
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}
