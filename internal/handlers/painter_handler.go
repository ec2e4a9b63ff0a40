package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/painterconnectory/backend/internal/cache"
	"github.com/painterconnectory/backend/internal/dto"
	"github.com/painterconnectory/backend/internal/models"
	"github.com/painterconnectory/backend/internal/store"
)

const painterListCacheKey = "painters:list"

type PainterHandler struct {
	profiles store.ProfileStore
	cache    *cache.Cache
}

func NewPainterHandler(profiles store.ProfileStore, c *cache.Cache) *PainterHandler {
	return &PainterHandler{profiles: profiles, cache: c}
}

// List returns the public painter directory. The listing is read-heavy and
// tolerates slightly stale data, so it sits behind a short-TTL cache.
func (h *PainterHandler) List(c *fiber.Ctx) error {
	if cached, ok := h.cache.Get(painterListCacheKey); ok {
		if painters, ok := cached.([]dto.PainterResponse); ok {
			return c.JSON(painters)
		}
	}

	profiles, err := h.profiles.ListByRole(c.Context(), models.RolePainter)
	if err != nil {
		slog.Error("painter listing failed", "operation", "painters.list", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load painters",
		})
	}

	painters := make([]dto.PainterResponse, 0, len(profiles))
	for i := range profiles {
		painters = append(painters, painterView(&profiles[i]))
	}

	h.cache.Set(painterListCacheKey, painters)
	return c.JSON(painters)
}

// ListAll is the admin view: full profile rows, no cache.
func (h *PainterHandler) ListAll(c *fiber.Ctx) error {
	profiles, err := h.profiles.ListByRole(c.Context(), models.RolePainter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load painters",
		})
	}
	return c.JSON(profiles)
}

func painterView(p *models.Profile) dto.PainterResponse {
	view := dto.PainterResponse{
		ID:     p.ID,
		Name:   p.Name,
		Avatar: p.Avatar,
	}

	if models.HasStoredValue(p.Location) {
		loc := models.DecodeJSON(p.Location, models.Location{})
		view.Location = &loc
	}
	info := models.DecodeJSON(p.CompanyInfo, models.CompanyInfo{})
	view.CompanyInfo = &info

	sub := models.DecodeJSON(p.Subscription, models.SubscriptionEntitlement{})
	view.Pro = sub.Entitled()

	return view
}
