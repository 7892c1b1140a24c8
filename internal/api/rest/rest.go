package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/keystone-cre/leaseledger/internal/api/middleware"
)

// SetupRoutes configures all REST API routes. Reads are open; writes require
// authentication.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	auth := middleware.Auth(authCfg)
	{
		// Reference entities
		v1.POST("/properties", auth, handler.CreateProperty)
		v1.GET("/properties/:id", handler.GetProperty)
		v1.PUT("/properties/:id", auth, handler.UpdateProperty)
		v1.DELETE("/properties/:id", auth, handler.DeleteProperty)
		v1.GET("/properties/:id/suites", handler.ListPropertySuites)

		v1.POST("/suites", auth, handler.CreateSuite)
		v1.GET("/suites/:id", handler.GetSuite)
		v1.PUT("/suites/:id", auth, handler.UpdateSuite)
		v1.DELETE("/suites/:id", auth, handler.DeleteSuite)

		v1.POST("/parties", auth, handler.CreateParty)
		v1.GET("/parties/:id", handler.GetParty)
		v1.PUT("/parties/:id", auth, handler.UpdateParty)
		v1.DELETE("/parties/:id", auth, handler.DeleteParty)

		// Lease shell and version ledger
		v1.POST("/leases", auth, handler.CreateLease)
		v1.GET("/leases", handler.ListLeases)
		v1.GET("/leases/:id", handler.GetLease)
		v1.PUT("/leases/:id", auth, handler.UpdateLease)
		v1.DELETE("/leases/:id", auth, handler.DeleteLease)
		v1.POST("/leases/:id/versions", auth, handler.CreateVersion)
		v1.GET("/leases/:id/versions", handler.ListVersions)
		v1.GET("/leases/:id/versions/current", handler.GetCurrentVersion)

		// Fact attachments scoped to a version
		v1.POST("/versions/:id/rent-periods", auth, handler.CreateRentPeriod)
		v1.GET("/versions/:id/rent-periods", handler.ListRentPeriods)
		v1.DELETE("/rent-periods/:id", auth, handler.DeleteRentPeriod)
		v1.POST("/versions/:id/option-windows", auth, handler.CreateOptionWindow)
		v1.GET("/versions/:id/option-windows", handler.ListOptionWindows)
		v1.GET("/option-windows/:id", handler.GetOptionWindow)
		v1.PATCH("/option-windows/:id", auth, handler.UpdateOptionWindow)
		v1.DELETE("/option-windows/:id", auth, handler.DeleteOptionWindow)
		v1.POST("/versions/:id/concessions", auth, handler.CreateConcession)
		v1.GET("/versions/:id/concessions", handler.ListConcessions)
		v1.GET("/concessions/:id", handler.GetConcession)
		v1.PATCH("/concessions/:id", auth, handler.UpdateConcession)
		v1.DELETE("/concessions/:id", auth, handler.DeleteConcession)

		// Fact attachments scoped to a lease
		v1.POST("/leases/:id/milestones", auth, handler.CreateMilestone)
		v1.GET("/leases/:id/milestones", handler.ListMilestones)
		v1.PUT("/milestones/:id", auth, handler.UpdateMilestone)
		v1.DELETE("/milestones/:id", auth, handler.DeleteMilestone)
		v1.POST("/leases/:id/documents", auth, handler.CreateDocumentLink)
		v1.GET("/leases/:id/documents", handler.ListDocumentLinks)
		v1.PATCH("/documents/:id", auth, handler.UpdateDocumentLink)
		v1.DELETE("/documents/:id", auth, handler.DeleteDocumentLink)

		// Derived-metric queries (public read access)
		v1.GET("/leases/:id/metrics", handler.GetLeaseMetrics)
		v1.GET("/metrics/rent-roll", handler.GetRentRoll)
		v1.GET("/metrics/expirations", handler.GetExpirations)
		v1.GET("/metrics/notice-windows", handler.GetOpenNoticeWindows)
		v1.GET("/metrics/free-rent", handler.GetFreeRent)
		v1.GET("/metrics/allowances", handler.GetAllowances)
	}
}
