package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-api/internal/usecase/user"
)

const maxPhotoBytes = 5 << 20

type MeHandler struct {
	profile *user.GetProfile
	update  *user.UpdateProfile
	photo   *user.UpdatePhoto
	log     *zap.Logger
}

func NewMeHandler(
	profile *user.GetProfile,
	update *user.UpdateProfile,
	photo *user.UpdatePhoto,
	log *zap.Logger,
) *MeHandler {
	return &MeHandler{
		profile: profile,
		update:  update,
		photo:   photo,
		log:     log,
	}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	u, err := h.profile.Execute(c.Request.Context(), caller)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, u)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	var req domain.ProfileUpdate
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.update.Execute(c.Request.Context(), caller, req)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, u)
}

// UpdatePhoto expects a multipart form with the image in the "photo" field.
func (h *MeHandler) UpdatePhoto(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "A photo file up to 5MB is required.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "A photo file up to 5MB is required.")
		return
	}
	defer f.Close()

	u, err := h.photo.Execute(c.Request.Context(), caller, f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, u)
}
