package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLeaseMetrics computes the derived-metric summary for one lease
// GET /api/v1/leases/:id/metrics?as_of=<date>
func (h *handler) GetLeaseMetrics(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.GetLeaseMetrics(c.Request.Context(), id, c.Query("as_of"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetRentRoll projects the portfolio rent roll
// GET /api/v1/metrics/rent-roll?as_of=<date>&property_id=<id>&party_id=<id>
func (h *handler) GetRentRoll(c *gin.Context) {
	params, err := ParseMetricsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	resp, err := h.executor.GetRentRoll(c.Request.Context(), params.AsOf, params.Filter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetExpirations lists leases expiring within the horizon
// GET /api/v1/metrics/expirations?as_of=<date>&within_days=<days>&property_id=<id>&party_id=<id>
func (h *handler) GetExpirations(c *gin.Context) {
	params, err := ParseMetricsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	lookahead, err := parseLookahead(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	resp, err := h.executor.GetExpirations(c.Request.Context(), params.AsOf, lookahead, params.Filter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOpenNoticeWindows lists option windows open as of a date
// GET /api/v1/metrics/notice-windows?as_of=<date>&property_id=<id>&party_id=<id>
func (h *handler) GetOpenNoticeWindows(c *gin.Context) {
	params, err := ParseMetricsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	resp, err := h.executor.GetOpenNoticeWindows(c.Request.Context(), params.AsOf, params.Filter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetFreeRent lists unexpired free rent concessions
// GET /api/v1/metrics/free-rent?as_of=<date>&property_id=<id>&party_id=<id>
func (h *handler) GetFreeRent(c *gin.Context) {
	params, err := ParseMetricsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	resp, err := h.executor.GetFreeRent(c.Request.Context(), params.AsOf, params.Filter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAllowances rolls up TI allowances across the portfolio
// GET /api/v1/metrics/allowances?property_id=<id>&party_id=<id>
func (h *handler) GetAllowances(c *gin.Context) {
	params, err := ParseMetricsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	resp, err := h.executor.GetAllowances(c.Request.Context(), params.Filter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
