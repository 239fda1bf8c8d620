package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

const exportPageSize = 100

// ItemWriter renders a full item listing as a downloadable document.
type ItemWriter interface {
	ContentType() string
	WriteItems(w io.Writer, items []*domain.EwasteItem) error
}

type ExportHandler struct {
	items  ports.ItemService
	writer ItemWriter
	logger zerolog.Logger
}

func NewExportHandler(items ports.ItemService, writer ItemWriter, logger zerolog.Logger) *ExportHandler {
	return &ExportHandler{items: items, writer: writer, logger: logger}
}

// Export handles GET /ewaste/export.
//
// @Summary      Export items as a spreadsheet
// @Tags         ewaste
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        status    query  string  false  "Filter by status"
// @Param        category  query  string  false  "Filter by category"
// @Success      200
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /ewaste/export [get]
func (h *ExportHandler) Export(c echo.Context) error {
	ctx := c.Request().Context()
	filter := ports.ListItemsInput{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Limit:    exportPageSize,
	}

	var all []*domain.EwasteItem
	for page := 1; ; page++ {
		filter.Page = page
		res, err := h.items.ListItems(ctx, filter)
		if err != nil {
			return err
		}
		all = append(all, res.Items...)
		if page >= res.TotalPages {
			break
		}
	}

	var buf bytes.Buffer
	if err := h.writer.WriteItems(&buf, all); err != nil {
		return fmt.Errorf("export items: %w", err)
	}

	h.logger.Info().Int("items", len(all)).Msg("items exported")

	filename := fmt.Sprintf("ewaste-items-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, h.writer.ContentType(), buf.Bytes())
}
