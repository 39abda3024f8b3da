package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *appointment.CreateAppointment
	listMine     *appointment.ListMyAppointments
	listAll      *appointment.ListAllAppointments
	get          *appointment.GetAppointment
	updateStatus *appointment.UpdateAppointmentStatus
	remove       *appointment.DeleteAppointment
	log          *zap.Logger
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	listMine *appointment.ListMyAppointments,
	listAll *appointment.ListAllAppointments,
	get *appointment.GetAppointment,
	updateStatus *appointment.UpdateAppointmentStatus,
	remove *appointment.DeleteAppointment,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		listMine:     listMine,
		listAll:      listAll,
		get:          get,
		updateStatus: updateStatus,
		remove:       remove,
		log:          log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	var req appointment.CreateAppointmentInput
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), caller, req)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	list, err := h.listMine.Execute(c.Request.Context(), caller)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

// ListAll serves the back-office view, filtered by ?status= and ?date=YYYY-MM-DD.
func (h *AppointmentHandler) ListAll(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}

	list, err := h.listAll.Execute(c.Request.Context(), caller, appointment.AdminListInput{
		Status: c.Query("status"),
		Date:   c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), caller, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS / DELETE
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), caller, id, req.Status)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), caller, id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Message(c, "appointment deleted")
}
