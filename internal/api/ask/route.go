package ask

import "github.com/gofiber/fiber/v3"

func RegisterRoutes(r fiber.Router, h *Handler) {
	grp := r.Group("/ask")

	grp.Post("/", h.HandleAsk)
}
