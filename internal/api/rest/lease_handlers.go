package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keystone-cre/leaseledger/internal/api/shared/dto"
)

// CreateLease creates a lease shell, optionally with its first version
// POST /api/v1/leases
func (h *handler) CreateLease(c *gin.Context) {
	var req dto.CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.CreateLease(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetLease retrieves a lease shell by id
// GET /api/v1/leases/:id
func (h *handler) GetLease(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.GetLease(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListLeases lists lease shells with optional property and party filters
// GET /api/v1/leases?property_id=<id>&party_id=<id>&limit=<limit>&offset=<offset>
func (h *handler) ListLeases(c *gin.Context) {
	params, err := ParseListLeasesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	resp, err := h.executor.ListLeases(c.Request.Context(), params.Filter())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateLease updates a lease shell's administrative fields
// PUT /api/v1/leases/:id
func (h *handler) UpdateLease(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.UpdateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.UpdateLease(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteLease removes a lease shell that has no versions
// DELETE /api/v1/leases/:id
func (h *handler) DeleteLease(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := h.executor.DeleteLease(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateVersion appends a version to a lease's amendment ledger
// POST /api/v1/leases/:id/versions
func (h *handler) CreateVersion(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.CreateVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.CreateVersion(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetCurrentVersion retrieves the version currently in force for a lease
// GET /api/v1/leases/:id/versions/current
func (h *handler) GetCurrentVersion(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.GetCurrentVersion(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListVersions lists a lease's full amendment history, oldest first
// GET /api/v1/leases/:id/versions
func (h *handler) ListVersions(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.ListVersions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateRentPeriod attaches a rent period to a version
// POST /api/v1/versions/:id/rent-periods
func (h *handler) CreateRentPeriod(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.CreateRentPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.CreateRentPeriod(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListRentPeriods lists a version's rent periods in interval order
// GET /api/v1/versions/:id/rent-periods
func (h *handler) ListRentPeriods(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.ListRentPeriods(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rent_periods": resp, "total": len(resp)})
}

// DeleteRentPeriod removes a rent period
// DELETE /api/v1/rent-periods/:id
func (h *handler) DeleteRentPeriod(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := h.executor.DeleteRentPeriod(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateOptionWindow attaches an option window to a version
// POST /api/v1/versions/:id/option-windows
func (h *handler) CreateOptionWindow(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.CreateOptionWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.CreateOptionWindow(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetOptionWindow retrieves an option window by id
// GET /api/v1/option-windows/:id
func (h *handler) GetOptionWindow(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.GetOptionWindow(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOptionWindows lists a version's option windows
// GET /api/v1/versions/:id/option-windows
func (h *handler) ListOptionWindows(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.ListOptionWindows(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"option_windows": resp, "total": len(resp)})
}

// UpdateOptionWindow updates an option window's terms or exercise state
// PATCH /api/v1/option-windows/:id
func (h *handler) UpdateOptionWindow(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.UpdateOptionWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.UpdateOptionWindow(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteOptionWindow removes an option window
// DELETE /api/v1/option-windows/:id
func (h *handler) DeleteOptionWindow(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := h.executor.DeleteOptionWindow(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateConcession attaches a concession to a version
// POST /api/v1/versions/:id/concessions
func (h *handler) CreateConcession(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.CreateConcessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.CreateConcession(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListConcessions lists a version's concessions
// GET /api/v1/versions/:id/concessions
func (h *handler) ListConcessions(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.ListConcessions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"concessions": resp, "total": len(resp)})
}

// GetConcession retrieves a concession by id
// GET /api/v1/concessions/:id
func (h *handler) GetConcession(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.GetConcession(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateConcession updates a concession's value or applies interval
// PATCH /api/v1/concessions/:id
func (h *handler) UpdateConcession(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.UpdateConcessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.UpdateConcession(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteConcession removes a concession
// DELETE /api/v1/concessions/:id
func (h *handler) DeleteConcession(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := h.executor.DeleteConcession(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateMilestone attaches a milestone date to a lease
// POST /api/v1/leases/:id/milestones
func (h *handler) CreateMilestone(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.CreateMilestone(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMilestones lists a lease's milestone dates
// GET /api/v1/leases/:id/milestones
func (h *handler) ListMilestones(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.ListMilestones(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"milestones": resp, "total": len(resp)})
}

// UpdateMilestone updates a milestone date
// PUT /api/v1/milestones/:id
func (h *handler) UpdateMilestone(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.UpdateMilestone(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteMilestone removes a milestone date
// DELETE /api/v1/milestones/:id
func (h *handler) DeleteMilestone(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := h.executor.DeleteMilestone(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateDocumentLink attaches a document link to a lease
// POST /api/v1/leases/:id/documents
func (h *handler) CreateDocumentLink(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.CreateDocumentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.CreateDocumentLink(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListDocumentLinks lists a lease's document links
// GET /api/v1/leases/:id/documents
func (h *handler) ListDocumentLinks(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	resp, err := h.executor.ListDocumentLinks(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": resp, "total": len(resp)})
}

// UpdateDocumentLink updates a document link's label or external reference
// PATCH /api/v1/documents/:id
func (h *handler) UpdateDocumentLink(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	var req dto.UpdateDocumentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	resp, err := h.executor.UpdateDocumentLink(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteDocumentLink removes a document link
// DELETE /api/v1/documents/:id
func (h *handler) DeleteDocumentLink(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := h.executor.DeleteDocumentLink(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
