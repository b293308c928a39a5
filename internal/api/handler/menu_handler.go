package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/res-landing/restaurant-system/internal/api/metrics"
	"github.com/res-landing/restaurant-system/internal/core/domain"
	"github.com/res-landing/restaurant-system/internal/core/ports"
)

// MenuHandler handles HTTP requests for the menu catalog.
type MenuHandler struct {
	service ports.MenuService
}

func NewMenuHandler(service ports.MenuService) *MenuHandler {
	return &MenuHandler{service: service}
}

// List returns every item on the menu.
//
// @Summary      List menu items
// @Tags         menu
// @Produce      json
// @Success      200  {array}   menuItemResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/menu-items [get]
func (h *MenuHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]menuItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toMenuItemResponse(item))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get returns a single menu item by id.
//
// @Summary      Get a menu item
// @Tags         menu
// @Produce      json
// @Param        id   path      string  true  "Menu item id"
// @Success      200  {object}  menuItemResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/menu-items/{id} [get]
func (h *MenuHandler) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMenuItemResponse(item))
}

// Create adds a new menu item. Admin only.
//
// @Summary      Create a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMenuItemRequest  true  "Menu item details"
// @Success      201   {object}  menuItemResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /api/menu-items [post]
func (h *MenuHandler) Create(c echo.Context) error {
	var req createMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.Create(c.Request().Context(), ports.CreateMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}

	metrics.MenuMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toMenuItemResponse(item))
}

// Update modifies an existing menu item. Absent fields are left untouched.
// Admin only.
//
// @Summary      Update a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Menu item id"
// @Param        body  body      updateMenuItemRequest  true  "Fields to update"
// @Success      200   {object}  menuItemResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/menu-items/{id} [put]
func (h *MenuHandler) Update(c echo.Context) error {
	var req updateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}

	metrics.MenuMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toMenuItemResponse(item))
}

// Delete removes a menu item. Admin only.
//
// @Summary      Delete a menu item
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Menu item id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/menu-items/{id} [delete]
func (h *MenuHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.MenuMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "menu item removed"})
}

func toMenuItemResponse(item *domain.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		Image:       item.Image,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
