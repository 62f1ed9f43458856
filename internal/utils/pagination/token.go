// Package pagination provides opaque cursor tokens for paged list
// endpoints.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeToken creates a base64 encoded token from the cursor fields.
// Fields must not contain the separator character.
func EncodeToken(fields ...string) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeToken parses a token back into its cursor fields, enforcing the
// expected field count.
func DecodeToken(token string, want int) ([]string, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.Split(string(decoded), "|")
	if len(parts) != want {
		return nil, fmt.Errorf("invalid pagination token format: got %d fields, want %d", len(parts), want)
	}
	return parts, nil
}
