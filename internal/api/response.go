// Package api implements the HTTP handlers for the music service. Every
// response uses the success envelope: {"success": bool, "data": ...} on
// success and {"success": false, "error": ...} on failure.
package api

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape of every API response
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// respondData writes a success envelope with the given payload
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// respondEmpty writes a success envelope with an empty object payload
func respondEmpty(c *gin.Context, status int) {
	c.JSON(status, Envelope{Success: true, Data: gin.H{}})
}

// respondError writes a failure envelope with a user-facing message
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Error: message})
}
