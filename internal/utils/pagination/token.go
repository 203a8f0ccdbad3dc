package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Cursor identifies the last transaction of a page. Listings are ordered by
// date descending, then creation time descending, then ID ascending.
type Cursor struct {
	Date      time.Time
	CreatedAt time.Time
	ID        string
}

// EncodeToken creates a base64 encoded token from a cursor.
func EncodeToken(c Cursor) string {
	tokenStr := fmt.Sprintf("%s|%s|%s", c.Date.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into a cursor.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return Cursor{Date: date, CreatedAt: createdAt, ID: parts[2]}, nil
}

// After reports whether c sorts strictly after prev in listing order.
func (c Cursor) After(prev Cursor) bool {
	if !c.Date.Equal(prev.Date) {
		return c.Date.Before(prev.Date)
	}
	if !c.CreatedAt.Equal(prev.CreatedAt) {
		return c.CreatedAt.Before(prev.CreatedAt)
	}
	return c.ID > prev.ID
}

// Page cuts one page out of items, which must already be in listing order.
// An empty token starts at the beginning. The returned token is empty on the
// last page.
func Page[T any](items []T, limit int, token string, key func(T) Cursor) ([]T, string, error) {
	start := 0
	if token != "" {
		prev, err := DecodeToken(token)
		if err != nil {
			return nil, "", err
		}
		start = len(items)
		for i, it := range items {
			if key(it).After(prev) {
				start = i
				break
			}
		}
	}

	rest := items[start:]
	if limit <= 0 || len(rest) <= limit {
		return rest, "", nil
	}
	page := rest[:limit]
	return page, EncodeToken(key(page[len(page)-1])), nil
}
