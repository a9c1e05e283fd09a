package api

import (
	models "YenMetrics/internal/domain/models"
	"YenMetrics/internal/usecase"
	xhttp "YenMetrics/pkg/http"
	xlogger "YenMetrics/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MetricsHandler serves the computed market metrics over Echo.
type MetricsHandler struct {
	logger *xlogger.Logger
	svc    *usecase.SnapshotService
}

func NewMetricsHandler(logger *xlogger.Logger, svc *usecase.SnapshotService) *MetricsHandler {
	return &MetricsHandler{logger: logger, svc: svc}
}

func (h *MetricsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/snapshot", h.Snapshot)
	g.GET("/snapshot/history", h.SnapshotHistory)
	g.GET("/rate", h.Rate)
	g.GET("/credit", h.Credit)
}

// Snapshot returns the latest full snapshot: rate probabilities plus the
// ranked issuer credit profiles.
func (h *MetricsHandler) Snapshot(c echo.Context) error {
	snap, err := h.svc.Current(c.Request().Context())
	if err != nil {
		h.logger.Error("snapshot query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if snap == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no snapshot evaluated yet"))
	}
	return xhttp.SuccessResponse(c, snap)
}

// SnapshotHistory returns the snapshot evaluated from a given data version.
func (h *MetricsHandler) SnapshotHistory(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap, err := h.svc.ByVersion(c.Request().Context(), req.Version)
	if err != nil {
		h.logger.Error("snapshot history query error",
			xlogger.String("version", req.Version), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if snap == nil {
		return xhttp.AppErrorResponse(c,
			xhttp.NotFoundErrorf("no snapshot for data version %q", req.Version))
	}
	return xhttp.SuccessResponse(c, snap)
}

// Rate returns only the policy-rate probability block.
func (h *MetricsHandler) Rate(c echo.Context) error {
	snap, err := h.svc.Current(c.Request().Context())
	if err != nil {
		h.logger.Error("rate query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if snap == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no rate result evaluated yet"))
	}
	return xhttp.SuccessResponse(c, snap.RateResult)
}

// Credit returns the issuer credit profiles ranked by five-year default
// probability, truncated to the requested limit.
func (h *MetricsHandler) Credit(c echo.Context) error {
	req := &models.CreditRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap, err := h.svc.Current(c.Request().Context())
	if err != nil {
		h.logger.Error("credit query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if snap == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no snapshot evaluated yet"))
	}

	profiles := snap.CreditProfiles
	if len(profiles) > req.Limit {
		profiles = profiles[:req.Limit]
	}
	return xhttp.ListResponse(c, profiles, int64(len(snap.CreditProfiles)))
}
