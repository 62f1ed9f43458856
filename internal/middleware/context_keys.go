package middleware

import "context"

const (
	employeeIDKey  = contextKey("employeeID")
	bearerTokenKey = contextKey("bearerToken")
)

// GetEmployeeIDFromCtx retrieves the authenticated employee's id.
func GetEmployeeIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(employeeIDKey).(string)
	return id, ok
}

// GetBearerTokenFromCtx retrieves the caller's raw bearer token so the
// gateway client can forward it on behalf of the user.
func GetBearerTokenFromCtx(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerTokenKey).(string)
	return token, ok
}
