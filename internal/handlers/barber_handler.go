package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-api/internal/usecase/user"
)

type BarberHandler struct {
	barbers *user.ListBarbers
	log     *zap.Logger
}

func NewBarberHandler(barbers *user.ListBarbers, log *zap.Logger) *BarberHandler {
	return &BarberHandler{barbers: barbers, log: log}
}

func (h *BarberHandler) List(c *gin.Context) {
	barbers, err := h.barbers.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, barbers)
}
