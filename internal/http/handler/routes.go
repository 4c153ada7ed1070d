package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"datapub/internal/contextdoc"
	"datapub/internal/model"
	"datapub/internal/service"
)

// varyHeaders is sent on every negotiated response so caches key on both
// dimensions of the representation.
const varyHeaders = "Accept, Accept-Profile"

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers translate between the wire and the service; no rendering or
// negotiation logic lives here.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.DatasetService, ctxDoc *contextdoc.Document) {
	app.Get("/openapi.yaml", OpenAPISpec())
	app.Get("/docs", DocsUI())
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/context.jsonld", ContextDocument(ctxDoc))
	app.Get("/.well-known/ai-plugin.json", ServiceDescriptor())
	app.Get("/datasets", ListDatasets(svc))
	app.Post("/datasets", IngestDataset(svc))
	app.Get("/datasets/:id", DescribeDataset(svc))
	app.Get("/datasets/:id/download", DownloadDistribution(svc))
	app.Post("/datasets/:id/distributions", UploadDistribution(svc))
	app.Delete("/datasets/:id", DeleteDataset(svc))
}

// OpenAPISpec serves the static OpenAPI document.
func OpenAPISpec() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	}
}

// DocsUI serves a Swagger UI page pointed at the OpenAPI document.
func DocsUI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	}
}

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ContextDocument serves the shared JSON-LD context, immutable per process,
// with a strong ETag so clients can revalidate cheaply.
func ContextDocument(doc *contextdoc.Document) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderETag, doc.ETag())
		c.Set(fiber.HeaderCacheControl, doc.CacheControl())
		if doc.Matches(c.Get(fiber.HeaderIfNoneMatch)) {
			return c.SendStatus(fiber.StatusNotModified)
		}
		c.Set(fiber.HeaderContentType, "application/ld+json")
		return c.Send(doc.Body())
	}
}

// ServiceDescriptor serves a machine-readable description of the service.
func ServiceDescriptor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"schema_version":        "v1",
			"name_for_human":        "Dataset Publication API",
			"name_for_model":        "datapub",
			"description_for_human": "Publishes dataset metadata as JSON-LD, Turtle and HTML.",
			"api": fiber.Map{
				"type": "openapi",
				"url":  "/openapi.yaml",
			},
		})
	}
}

// ListDatasets returns datasets with limit & offset pagination.
func ListDatasets(svc service.DatasetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// IngestDataset accepts dataset metadata as JSON and persists it.
func IngestDataset(svc service.DatasetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var ds model.Dataset
		if err := c.BodyParser(&ds); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not valid dataset metadata")
		}

		stored, err := svc.Ingest(c.UserContext(), &ds)
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
					"request_id": requestIDFromCtx(c),
					"error": fiber.Map{
						"code":     "VALIDATION_FAILED",
						"message":  "dataset metadata is invalid",
						"problems": verr.Problems,
					},
				})
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(stored)
	}
}

// DescribeDataset serves a negotiated representation of one dataset.
func DescribeDataset(svc service.DatasetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		out, err := svc.Describe(c.UserContext(), id, c.Get(fiber.HeaderAccept), c.Get("Accept-Profile"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "dataset not found")
			case errors.Is(err, service.ErrNotAcceptable), errors.Is(err, service.ErrUnrenderable):
				c.Set(fiber.HeaderVary, varyHeaders)
				return writeError(c, fiber.StatusNotAcceptable, "NOT_ACCEPTABLE", "no acceptable representation")
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Set(fiber.HeaderContentType, out.MediaType)
		c.Set("Content-Profile", fmt.Sprintf("<%s>", out.Profile))
		c.Set(fiber.HeaderVary, varyHeaders)
		return c.Send(out.Body)
	}
}

// DownloadDistribution streams one distribution's bytes as an attachment.
// The distribution is selected with the ?distribution=N query parameter.
func DownloadDistribution(svc service.DatasetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		index, err := strconv.Atoi(c.Query("distribution", "0"))
		if err != nil || index < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DISTRIBUTION", "invalid distribution index")
		}

		rc, dist, err := svc.Download(c.UserContext(), id, index)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "distribution not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		ct := dist.MediaType
		if ct == "" {
			ct = "application/octet-stream"
		}
		c.Set(fiber.HeaderContentType, ct)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", dist.Filename))
		if dist.ContentSize > 0 {
			return c.SendStream(rc, int(dist.ContentSize))
		}
		return c.SendStream(rc)
	}
}

// UploadDistribution accepts a multipart upload (field name: file) and
// attaches it to the dataset as a new distribution.
func UploadDistribution(svc service.DatasetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		ds, err := svc.AddDistribution(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "dataset not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(ds)
	}
}

// DeleteDataset removes a dataset and its stored distributions.
func DeleteDataset(svc service.DatasetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "dataset not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
