package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-api/internal/usecase/user"
)

type AuthHandler struct {
	register *user.RegisterUser
	login    *user.Login
	log      *zap.Logger
}

func NewAuthHandler(
	register *user.RegisterUser,
	login *user.Login,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		log:      log,
	}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterInput
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.register.Execute(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	res, err := h.login.IssueFor(u)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, res)
}
