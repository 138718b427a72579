package download

import "github.com/gofiber/fiber/v3"

func RegisterRoutes(r fiber.Router) {
	grp := r.Group("/downloads")

	grp.Get("/*", HandleDownload)
}
