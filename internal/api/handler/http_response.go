package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the flat error body the caller contract fixes for every
// non-success status: {"message": "..."}.
type ErrorResponse struct {
	Message string `json:"message"`
}

// RespondBadRequest sends a 400 with a human-readable message
func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// RespondInternalError sends a generic 500 without leaking internal detail
func RespondInternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
}

// RespondIdentifier sends a 200 whose entire body is the identifier as a
// JSON-quoted string, matching PostgREST's scalar function output.
func RespondIdentifier(c *gin.Context, id string) {
	c.JSON(http.StatusOK, id)
}
