package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryInt parses a positive integer query parameter, writing a 400 response
// and returning false on bad input.
func queryInt(c *gin.Context, name, fallback string) (int, bool) {
	value, err := strconv.Atoi(c.DefaultQuery(name, fallback))
	if err != nil || value < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return value, true
}

// queryFloat parses a non-negative float query parameter, writing a 400
// response and returning false on bad input.
func queryFloat(c *gin.Context, name string, fallback float64) (float64, bool) {
	raw := c.DefaultQuery(name, strconv.FormatFloat(fallback, 'f', -1, 64))
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return 0, false
	}
	return value, true
}
