package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbershop-api/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-api/internal/usecase/user"
)

// UserHandler is the admin user-management surface.
type UserHandler struct {
	users *user.ManageUsers
	log   *zap.Logger
}

func NewUserHandler(users *user.ManageUsers, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) List(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	users, err := h.users.List(c.Request.Context(), caller)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	var req user.AdminCreateInput
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Create(c.Request.Context(), caller, req)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req domain.AdminUpdate
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), caller, id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Message(c, "user deleted")
}
