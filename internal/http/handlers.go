package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/facilityworks/industrial-dashboard/internal/domain"
	"github.com/facilityworks/industrial-dashboard/internal/etag"
	"github.com/facilityworks/industrial-dashboard/internal/service"
)

func Register(app *fiber.App, svcs *service.Services) {
	g := app.Group("/")

	g.Get("facilities", func(c *fiber.Ctx) error {
		items, err := svcs.Repos.ListFacilities(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(items)
	})

	g.Get("facilities/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "facility id must be an integer"})
		}
		details, err := svcs.FacilityDetails(c.Context(), id)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(details)
	})

	g.Get("sensor-readings", func(c *fiber.Ctx) error {
		filter, err := readingFilter(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		items, err := svcs.Readings.Query(c.Context(), filter)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(items)
	})

	g.Get("facilities/:id/dashboard-summary", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "facility id must be an integer"})
		}
		summary, err := svcs.Dashboard.Summary(c.Context(), id)
		if err != nil {
			return writeError(c, err)
		}

		token := etag.Fingerprint(summary)
		c.Set(fiber.HeaderETag, token)
		c.Set(fiber.HeaderCacheControl, etag.CacheControl)
		if etag.Match(c.Get(fiber.HeaderIfNoneMatch), token) {
			return c.SendStatus(fiber.StatusNotModified)
		}
		return c.JSON(summary)
	})
}

// writeError maps the domain error taxonomy onto response codes: unknown
// facility 404, caller input errors 400, anything else is a storage-side
// failure surfaced as 503.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrFacilityNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRange), errors.Is(err, domain.ErrInvalidCursor):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("storage failure")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage unavailable"})
	}
}
