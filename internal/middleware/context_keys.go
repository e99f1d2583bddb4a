package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// companyIDKey stores the authenticated company's ID in the request context.
const companyIDKey = contextKey("companyID")

// WithCompanyID returns a copy of ctx carrying the authenticated company ID.
func WithCompanyID(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, companyIDKey, companyID)
}

// GetCompanyIDFromContext retrieves the authenticated company ID from the
// request context. It returns the ID and a boolean indicating if it was found.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	companyID, ok := c.Request.Context().Value(companyIDKey).(string)
	if !ok || companyID == "" {
		return "", false
	}
	return companyID, true
}
