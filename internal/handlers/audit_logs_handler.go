package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-api/internal/audit"
	"github.com/BruksfildServices01/barbershop-api/internal/domain/policy"
	"github.com/BruksfildServices01/barbershop-api/internal/httperr"
	"github.com/BruksfildServices01/barbershop-api/internal/httpresp"
)

// AuditLister pages through stored audit rows.
type AuditLister interface {
	List(ctx context.Context, q audit.Query) (*audit.Page, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs AuditLister
	loc  *time.Location
	log  *zap.Logger
}

func NewAuditLogsHandler(logs AuditLister, loc *time.Location, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc, log: log}
}

// List accepts ?action= ?entity= ?user_id= ?from= ?to= (YYYY-MM-DD, shop time) ?page= ?limit=.
func (h *AuditLogsHandler) List(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	if !policy.CanViewAuditLog(caller) {
		httperr.Write(c, http.StatusForbidden, "forbidden", "Only admins can read the audit log.")
		return
	}

	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}
	q.Page, _ = strconv.Atoi(c.Query("page"))
	q.Limit, _ = strconv.Atoi(c.Query("limit"))

	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_user_id", "user_id must be a number.")
			return
		}
		uid := uint(id)
		q.UserID = &uid
	}

	// --------------------------------------------------
	// Date window; "to" is inclusive of the whole day
	// --------------------------------------------------

	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
			return
		}
		q.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
			return
		}
		end := to.AddDate(0, 0, 1)
		q.To = &end
	}

	page, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, h.log, httperr.Storage("audit_list_failed", err))
		return
	}

	httpresp.OK(c, page)
}
