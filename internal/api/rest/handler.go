package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keystone-cre/leaseledger/internal/api/shared/dto"
	"github.com/keystone-cre/leaseledger/internal/api/shared/executor"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// Reference entities
	CreateProperty(c *gin.Context)
	GetProperty(c *gin.Context)
	UpdateProperty(c *gin.Context)
	DeleteProperty(c *gin.Context)
	ListPropertySuites(c *gin.Context)
	CreateSuite(c *gin.Context)
	GetSuite(c *gin.Context)
	UpdateSuite(c *gin.Context)
	DeleteSuite(c *gin.Context)
	CreateParty(c *gin.Context)
	GetParty(c *gin.Context)
	UpdateParty(c *gin.Context)
	DeleteParty(c *gin.Context)

	// Lease shell and version ledger
	CreateLease(c *gin.Context)
	GetLease(c *gin.Context)
	UpdateLease(c *gin.Context)
	ListLeases(c *gin.Context)
	DeleteLease(c *gin.Context)
	CreateVersion(c *gin.Context)
	GetCurrentVersion(c *gin.Context)
	ListVersions(c *gin.Context)

	// Fact attachments
	CreateRentPeriod(c *gin.Context)
	ListRentPeriods(c *gin.Context)
	DeleteRentPeriod(c *gin.Context)
	CreateOptionWindow(c *gin.Context)
	GetOptionWindow(c *gin.Context)
	ListOptionWindows(c *gin.Context)
	UpdateOptionWindow(c *gin.Context)
	DeleteOptionWindow(c *gin.Context)
	CreateConcession(c *gin.Context)
	GetConcession(c *gin.Context)
	ListConcessions(c *gin.Context)
	UpdateConcession(c *gin.Context)
	DeleteConcession(c *gin.Context)
	CreateMilestone(c *gin.Context)
	ListMilestones(c *gin.Context)
	UpdateMilestone(c *gin.Context)
	DeleteMilestone(c *gin.Context)
	CreateDocumentLink(c *gin.Context)
	ListDocumentLinks(c *gin.Context)
	UpdateDocumentLink(c *gin.Context)
	DeleteDocumentLink(c *gin.Context)

	// Derived-metric queries
	GetLeaseMetrics(c *gin.Context)
	GetRentRoll(c *gin.Context)
	GetExpirations(c *gin.Context)
	GetOpenNoticeWindows(c *gin.Context)
	GetFreeRent(c *gin.Context)
	GetAllowances(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateProperty creates a property
// POST /api/v1/properties
func (h *handler) CreateProperty(c *gin.Context) {
	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.CreateProperty(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetProperty retrieves a property by id
// GET /api/v1/properties/:id
func (h *handler) GetProperty(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateProperty updates a property's administrative fields
// PUT /api/v1/properties/:id
func (h *handler) UpdateProperty(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.UpdateProperty(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteProperty removes a property with no dependent records
// DELETE /api/v1/properties/:id
func (h *handler) DeleteProperty(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := h.executor.DeleteProperty(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPropertySuites lists the suites of a property
// GET /api/v1/properties/:id/suites
func (h *handler) ListPropertySuites(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.ListSuites(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suites": resp, "total": len(resp)})
}

// CreateSuite creates a suite within a property
// POST /api/v1/suites
func (h *handler) CreateSuite(c *gin.Context) {
	var req dto.CreateSuiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.CreateSuite(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetSuite retrieves a suite by id
// GET /api/v1/suites/:id
func (h *handler) GetSuite(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.GetSuite(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateSuite updates a suite's administrative fields
// PUT /api/v1/suites/:id
func (h *handler) UpdateSuite(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.UpdateSuiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.UpdateSuite(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteSuite removes a suite with no dependent records
// DELETE /api/v1/suites/:id
func (h *handler) DeleteSuite(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := h.executor.DeleteSuite(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateParty creates a party
// POST /api/v1/parties
func (h *handler) CreateParty(c *gin.Context) {
	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.CreateParty(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetParty retrieves a party by id
// GET /api/v1/parties/:id
func (h *handler) GetParty(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.GetParty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateParty updates a party's administrative fields
// PUT /api/v1/parties/:id
func (h *handler) UpdateParty(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.UpdateParty(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteParty removes a party with no dependent records
// DELETE /api/v1/parties/:id
func (h *handler) DeleteParty(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := h.executor.DeleteParty(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
