// Package scalar serves an API reference page over the registered swag document.
package scalar

import (
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"
)

// Config for Scalar API Reference
type Config struct {
	Title string
	Theme string // default, moon, purple, solarized, bluePlanet, deepSpace, saturn, kepler, mars, none
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Title: "Family Heritage Archive API",
		Theme: "default",
	}
}

const scalarTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
</head>
<body>
    <script id="api-reference" data-url="/docs/openapi.json"></script>
    <script>
        document.getElementById('api-reference').dataset.configuration = JSON.stringify({
            theme: '{{.Theme}}'
        });
    </script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`

var page = template.Must(template.New("scalar").Parse(scalarTemplate))

// SetupRoutes adds the docs UI and the OpenAPI JSON it reads.
func SetupRoutes(app *fiber.App, config ...Config) {
	cfg := DefaultConfig()
	if len(config) > 0 {
		if config[0].Title != "" {
			cfg.Title = config[0].Title
		}
		if config[0].Theme != "" {
			cfg.Theme = config[0].Theme
		}
	}

	app.Get("/docs/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "API document not registered")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	render := func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return page.Execute(c.Response().BodyWriter(), cfg)
	}
	app.Get("/docs", render)
}
