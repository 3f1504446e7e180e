package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseIDParam parses a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}

// parseDateQuery parses a required YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s query parameter is required", name)
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be formatted as %s", name, dateLayout)
	}
	return t, nil
}

// parseOptionalInt64Query parses an optional integer query parameter,
// returning nil when absent.
func parseOptionalInt64Query(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s query parameter", name)
	}
	return &v, nil
}
