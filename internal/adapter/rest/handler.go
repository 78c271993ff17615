package rest

import (
	"crypto/md5"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/ekamil/links-to-epub/internal/domain"
	infralog "github.com/ekamil/links-to-epub/internal/infra/logger"
	"github.com/ekamil/links-to-epub/internal/usecase"
)

var artifactContentTypes = map[domain.ArtifactKind]string{
	domain.ArtifactRSS:  "application/rss+xml",
	domain.ArtifactAtom: "application/atom+xml",
	domain.ArtifactEpub: "application/epub+zip",
}

var artifactFilenames = map[domain.ArtifactKind]string{
	domain.ArtifactRSS:  "rss.xml",
	domain.ArtifactAtom: "atom.xml",
	domain.ArtifactEpub: "digest.epub",
}

// Handler exposes the HTTP surface of the service.
type Handler struct {
	submit  usecase.SubmitUsecase
	refresh usecase.RefreshUsecase
	listing usecase.ListingUsecase
	clear   usecase.ClearUsecase
	store   domain.LedgerStore
	logger  *slog.Logger
	reqLog  *infralog.ContextLogger
}

// NewHandler wires the REST handlers.
func NewHandler(
	submit usecase.SubmitUsecase,
	refresh usecase.RefreshUsecase,
	listing usecase.ListingUsecase,
	clear usecase.ClearUsecase,
	store domain.LedgerStore,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		submit:  submit,
		refresh: refresh,
		listing: listing,
		clear:   clear,
		store:   store,
		logger:  logger,
		reqLog:  infralog.NewContextLogger("links-to-epub"),
	}
}

// Register attaches all routes to the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/submit", h.Submit)
	e.GET("/feed/:fmt", h.Feed)
	e.GET("/", h.Listing)
	e.POST("/refresh-feeds", h.RefreshFeeds)
	e.DELETE("/", h.Clear)
}

type submitRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Submit accepts a URL, runs the conversion pipeline and returns the
// identity of the resulting ledger entry.
// (POST /submit)
func (h *Handler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx := infralog.WithSubmitURL(c.Request().Context(), req.URL)
	out, err := h.submit.Execute(ctx, usecase.SubmitInput{URL: req.URL, Title: req.Title})
	if err != nil {
		return h.errorResponse(c, err)
	}
	h.reqLog.WithContext(infralog.WithEntryID(ctx, out.ID)).Info("submission accepted")
	return c.JSON(http.StatusOK, out)
}

// Feed serves a generated feed artifact.
// (GET /feed/:fmt)
func (h *Handler) Feed(c echo.Context) error {
	kind, err := domain.ParseArtifactKind(c.Param("fmt"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("unknown feed format %q", c.Param("fmt")),
		})
	}

	ctx := infralog.WithArtifactKind(c.Request().Context(), string(kind))
	ledger, err := h.store.Load(ctx)
	if err != nil {
		return h.errorResponse(c, err)
	}

	data, err := os.ReadFile(h.store.ArtifactPath(kind))
	if errors.Is(err, fs.ErrNotExist) {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("%s artifact not generated", kind),
		})
	}
	if err != nil {
		return h.errorResponse(c, err)
	}

	header := c.Response().Header()
	header.Set("Cache-Control", "public, max-age=300")
	header.Set("Last-Modified", ledger.Updated.UTC().Format(http.TimeFormat))
	header.Set("ETag", fmt.Sprintf(`"%x"`, md5.Sum(data)))
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifactFilenames[kind]))
	h.reqLog.WithContext(ctx).Debug("artifact served", "bytes", len(data))
	return c.Blob(http.StatusOK, artifactContentTypes[kind], data)
}

// Listing returns the ledger with per-entry content redacted.
// (GET /)
func (h *Handler) Listing(c echo.Context) error {
	ledger, err := h.listing.Execute(c.Request().Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, ledger)
}

// RefreshFeeds deletes and regenerates every feed artifact.
// (POST /refresh-feeds)
func (h *Handler) RefreshFeeds(c echo.Context) error {
	if err := h.refresh.Execute(c.Request().Context()); err != nil {
		return h.errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Clear wipes the ledger and every raw and derived artifact.
// (DELETE /)
func (h *Handler) Clear(c echo.Context) error {
	if err := h.clear.Execute(c.Request().Context()); err != nil {
		return h.errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// errorResponse maps domain errors onto HTTP statuses. Conversion failures
// name their cause; storage failures stay generic.
func (h *Handler) errorResponse(c echo.Context, err error) error {
	var convErr *domain.ConversionError

	switch {
	case errors.Is(err, domain.ErrLedgerNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no submissions yet"})
	case errors.Is(err, domain.ErrInvalidFormat):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyURL):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &convErr):
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": convErr.Error()})
	default:
		h.logger.Error("request failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
