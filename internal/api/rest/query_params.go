package rest

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keystone-cre/leaseledger/internal/store"
)

const MAX_PAGE_SIZE = 200

// ListLeasesQueryParams holds query parameters for GET /leases
type ListLeasesQueryParams struct {
	PropertyID *uint64 `form:"property_id"`
	PartyID    *uint64 `form:"party_id"`
	Limit      int     `form:"limit,default=50"`
	Offset     int     `form:"offset,default=0"`
}

// ParseListLeasesQuery parses and caps lease listing parameters
func ParseListLeasesQuery(c *gin.Context) (*ListLeasesQueryParams, error) {
	var params ListLeasesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if params.Limit <= 0 || params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	return &params, nil
}

// Filter converts the parsed parameters into a store query filter
func (p *ListLeasesQueryParams) Filter() store.LeaseQueryFilter {
	return store.LeaseQueryFilter{
		PropertyID: p.PropertyID,
		PartyID:    p.PartyID,
		Limit:      p.Limit,
		Offset:     p.Offset,
	}
}

// MetricsQueryParams holds the shared parameters of the derived-metric
// endpoints. AsOf is a YYYY-MM-DD date; empty means "now". The portfolio
// filters narrow which leases are projected.
type MetricsQueryParams struct {
	AsOf       string  `form:"as_of"`
	PropertyID *uint64 `form:"property_id"`
	PartyID    *uint64 `form:"party_id"`
}

// ParseMetricsQuery parses the shared derived-metric parameters
func ParseMetricsQuery(c *gin.Context) (*MetricsQueryParams, error) {
	var params MetricsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// Filter converts the parsed parameters into a store query filter
func (p *MetricsQueryParams) Filter() store.LeaseQueryFilter {
	return store.LeaseQueryFilter{
		PropertyID: p.PropertyID,
		PartyID:    p.PartyID,
	}
}

// parseLookahead parses the within_days expiration horizon, defaulting to 180
func parseLookahead(c *gin.Context) (time.Duration, error) {
	raw := c.DefaultQuery("within_days", "180")
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, fmt.Errorf("within_days must be a positive integer")
	}
	return time.Duration(days) * 24 * time.Hour, nil
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}
