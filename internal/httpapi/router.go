package httpapi

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// NewRouter builds a fiber app with every route wired to s, CORS open for
// browser-extension and PWA clients the way the reference implementation
// configures it.
func NewRouter(s *Server) *fiber.App {
	app := fiber.New()

	// Default CORS config allows all origins/methods/headers, matching the
	// reference implementation's wide-open browser-extension policy.
	app.Use(cors.New())

	app.Get("/", s.handleRoot)
	app.Post("/translate", s.handleTranslate)
	app.Get("/showcase/sentences", s.handleShowcaseSentences)
	app.Get("/showcase/log/:sentence", s.handleShowcaseLog)
	app.Get("/languages", s.handleLanguages)
	app.Get("/stats/:lang_code", s.handleStats)

	return app
}
