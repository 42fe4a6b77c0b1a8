package utils

import (
	"github.com/drivelane/drivelane/drivelane/config"
	"github.com/gofiber/fiber/v2"
)

// ParsePagination reads page/limit query params, clamping limit to the
// configured maximum. Returns page, limit and the derived offset.
func ParsePagination(c *fiber.Ctx) (int, int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit := c.QueryInt("limit", config.DefaultPageSize)
	if limit < 1 {
		limit = config.DefaultPageSize
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}

	return page, limit, (page - 1) * limit
}
