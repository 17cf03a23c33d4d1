package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parseLimitOffset reads ?limit= and ?offset=. Out-of-range values keep the defaults.
func parseLimitOffset(c *fiber.Ctx, defLimit, maxLimit int) (limit, offset int) {
	limit = defLimit
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxLimit {
			limit = n
		}
	}
	if v := strings.TrimSpace(c.Query("offset")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
