package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-api/internal/usecase/catalog"
)

type ServiceHandler struct {
	services *catalog.Services
	log      *zap.Logger
}

func NewServiceHandler(services *catalog.Services, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{services: services, log: log}
}

// ======================================================
// PUBLIC
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.services.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, svc)
}

// ======================================================
// ADMIN
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	var req catalog.ServiceInput
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.services.Create(c.Request.Context(), caller, req)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req catalog.ServiceInput
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.services.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Delete(c.Request.Context(), caller, id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Message(c, "service deleted")
}
