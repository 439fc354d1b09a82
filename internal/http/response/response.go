package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apexwear/motionstudio-backend/internal/platform/apierr"
)

// Errors go out as {"error": "<message>"} at every status; clients key
// off the status code, not an error code field.

func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RespondAPIError maps err to its carried status when it is an
// apierr.Error (whose Code holds the user-facing message) and to 500
// otherwise.
func RespondAPIError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Code
		if message == "" {
			message = apiErr.Error()
		}
		c.JSON(apiErr.Status, gin.H{"error": message})
		return
	}
	message := "Unknown error"
	if err != nil {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
