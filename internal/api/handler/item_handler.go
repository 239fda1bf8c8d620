package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecotrace/ewaste-tracker/internal/api/metrics"
	"github.com/ecotrace/ewaste-tracker/internal/core/domain"
	"github.com/ecotrace/ewaste-tracker/internal/core/ports"
)

// ItemHandler serves the item registry, lookup and lifecycle endpoints.
type ItemHandler struct {
	items     ports.ItemService
	lookup    ports.LookupService
	lifecycle ports.LifecycleService
}

func NewItemHandler(items ports.ItemService, lookup ports.LookupService, lifecycle ports.LifecycleService) *ItemHandler {
	return &ItemHandler{items: items, lookup: lookup, lifecycle: lifecycle}
}

// Create handles POST /ewaste.
//
// @Summary      Report a new e-waste item
// @Tags         ewaste
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createItemRequest  true  "Item details"
// @Success      201   {object}  createItemResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /ewaste [post]
func (h *ItemHandler) Create(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}

	res, err := h.items.CreateItem(c.Request().Context(), toCreateItemInput(req, actor))
	if err != nil {
		return err
	}

	metrics.ItemsCreatedTotal.WithLabelValues(string(res.Item.Category)).Inc()

	return c.JSON(http.StatusCreated, createItemResponse{
		Message:     "E-waste item registered",
		Item:        toItemResponse(res.Item),
		LookupCode:  res.LookupCode,
		QRCodeImage: res.QRCodeImage,
	})
}

// List handles GET /ewaste.
//
// @Summary      List e-waste items
// @Tags         ewaste
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "Filter by status"
// @Param        category    query     string  false  "Filter by category"
// @Param        reportedBy  query     string  false  "Filter by reporter id"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Page size (default 20, max 100)"
// @Success      200         {object}  listItemsResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /ewaste [get]
func (h *ItemHandler) List(c echo.Context) error {
	var q listItemsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	res, err := h.items.ListItems(c.Request().Context(), ports.ListItemsInput{
		Status:     q.Status,
		Category:   q.Category,
		ReportedBy: q.ReportedBy,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(res))
}

// Get handles GET /ewaste/:id.
//
// @Summary      Get an item by id
// @Tags         ewaste
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  itemResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /ewaste/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	item, err := h.items.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// FindByCode handles GET /ewaste/qr/:code.
//
// @Summary      Resolve a scanned lookup code
// @Tags         ewaste
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string  true  "Lookup code"
// @Success      200   {object}  itemResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /ewaste/qr/{code} [get]
func (h *ItemHandler) FindByCode(c echo.Context) error {
	detail, err := h.lookup.FindByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrItemNotFound) {
			result = "miss"
		}
		metrics.LookupRequestsTotal.WithLabelValues(result).Inc()
		return err
	}
	metrics.LookupRequestsTotal.WithLabelValues("hit").Inc()

	return c.JSON(http.StatusOK, toItemDetailResponse(detail))
}

// UpdateStatus handles PUT /ewaste/:id/status.
//
// @Summary      Move an item to a new status
// @Tags         ewaste
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Item id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  updateStatusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /ewaste/{id}/status [put]
func (h *ItemHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.lifecycle.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		ItemID: c.Param("id"),
		Status: req.Status,
		Actor:  actor,
	})
	if err != nil {
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(item.Status)).Inc()

	return c.JSON(http.StatusOK, updateStatusResponse{
		Message: "Status updated",
		Item:    toItemResponse(item),
	})
}

// History handles GET /ewaste/:id/history.
//
// @Summary      Status history of an item
// @Tags         ewaste
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  historyResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /ewaste/{id}/history [get]
func (h *ItemHandler) History(c echo.Context) error {
	id := c.Param("id")
	history, err := h.lifecycle.History(c.Request().Context(), id)
	if err != nil {
		return err
	}

	current := ""
	if n := len(history); n > 0 {
		current = string(history[n-1].Status)
	}

	return c.JSON(http.StatusOK, historyResponse{
		ItemID:        id,
		Status:        current,
		StatusHistory: toHistoryResponse(history),
	})
}
