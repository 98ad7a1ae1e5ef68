package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// The report endpoints use a fixed wire contract: success wraps the payload
// in {"report": ...}; client errors carry {"error": ..., "received": [...]};
// backend failures carry a generic {"error": ...} with no query internals.

// Report writes a 200 response with the assembled report.
func Report(c *gin.Context, report interface{}) {
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// OK writes a bare 200 response (auth, health).
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// BadRequest writes a 400 response with an error message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// MissingFields writes a 400 response enumerating the absent required
// fields together with the fields actually received.
func MissingFields(c *gin.Context, missing, received []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":    "missing required fields: " + strings.Join(missing, ", "),
		"received": received,
	})
}

// InvalidFields writes a 400 response enumerating malformed fields.
func InvalidFields(c *gin.Context, fields []string, reason string) {
	msg := "invalid fields: " + strings.Join(fields, ", ")
	if reason != "" {
		msg += " (" + reason + ")"
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
}

// InternalError writes a 500 response with a generic message.
func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
