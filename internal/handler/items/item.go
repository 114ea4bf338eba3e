package items

import (
	"context"
	"net/http"

	"back2u/internal/api"
	"back2u/internal/asset"
	"back2u/internal/middleware"
	"back2u/internal/model"

	"github.com/labstack/echo/v4"
)

// Service is the item lifecycle used by the item handlers.
type Service interface {
	Create(ctx context.Context, ownerID string, in model.NewItem, image *asset.File) (*model.Item, error)
	Get(ctx context.Context, itemID string) (*model.Item, error)
	Update(ctx context.Context, callerID, itemID string, p model.ItemPatch, image *asset.File) (*model.Item, error)
	Resolve(ctx context.Context, callerID, itemID string) (*model.Item, error)
	List(ctx context.Context, f model.ItemFilter) ([]model.Item, error)
	ListMine(ctx context.Context, callerID string) ([]model.Item, error)
	DashboardStats(ctx context.Context, callerID string) (model.DashboardStats, error)
}

// @Summary     Post an item
// @Description Creates a lost or found posting owned by the caller. The optional image must be JPEG or PNG, at most 5MB.
// @Tags        items
// @Accept      multipart/form-data
// @Produce     json
// @Param       title       formData string true  "Title (max 20 characters)"
// @Param       description formData string true  "Description (max 1000 characters)"
// @Param       type        formData string true  "lost or found"
// @Param       category    formData string true  "electronics, documents, accessories or others"
// @Param       location    formData string true  "Where it was lost or found"
// @Param       image       formData file   false "Photo"
// @Success     201 {object} api.ItemResponse
// @Failure     400 {object} api.HTTPError
// @Failure     401 {object} api.HTTPError
// @Failure     500 {object} api.HTTPError
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /items [post]
func CreateItemHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in model.NewItem
		if err := c.Bind(&in); err != nil {
			return api.BadRequest(c, "invalid form data")
		}
		image, err := api.FormFile(c, "image", asset.MaxItemImageSize)
		if err != nil {
			return api.Fail(c, err)
		}
		it, err := svc.Create(c.Request().Context(), middleware.UserID(c), in, image)
		if err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusCreated, api.ItemResponse{Success: true, Message: "Item created successfully", Item: it})
	}
}

// @Summary     List items
// @Description Public listing, newest first. Resolved items are included.
// @Tags        items
// @Produce     json
// @Param       type     query string false "lost or found"
// @Param       category query string false "Category"
// @Param       search   query string false "Case-insensitive title substring"
// @Success     200 {object} api.ItemListResponse
// @Failure     400 {object} api.HTTPError
// @Router      /items [get]
func ListItemsHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := svc.List(c.Request().Context(), model.ItemFilter{
			Type:     model.ItemType(c.QueryParam("type")),
			Category: model.Category(c.QueryParam("category")),
			Search:   c.QueryParam("search"),
		})
		if err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusOK, api.ItemListResponse{Success: true, Items: items})
	}
}

// @Summary     List my items
// @Tags        items
// @Produce     json
// @Success     200 {object} api.ItemListResponse
// @Failure     401 {object} api.HTTPError
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /items/mine [get]
func ListMyItemsHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := svc.ListMine(c.Request().Context(), middleware.UserID(c))
		if err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusOK, api.ItemListResponse{Success: true, Items: items})
	}
}

// @Summary     Dashboard statistics
// @Description Counts of the caller's items: total, resolved and still active.
// @Tags        items
// @Produce     json
// @Success     200 {object} api.DashboardResponse
// @Failure     401 {object} api.HTTPError
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /items/dashboard [get]
func DashboardHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := svc.DashboardStats(c.Request().Context(), middleware.UserID(c))
		if err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusOK, api.DashboardResponse{Success: true, Stats: stats})
	}
}

// @Summary     Get an item
// @Description Includes the owner's name and email so finders can get in touch.
// @Tags        items
// @Produce     json
// @Param       id  path  string  true  "Item ID"
// @Success     200 {object} api.ItemResponse
// @Failure     404 {object} api.HTTPError
// @Router      /items/{id} [get]
func GetItemHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		it, err := svc.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusOK, api.ItemResponse{Success: true, Item: it})
	}
}

// @Summary     Mark an item resolved
// @Description Only the owner may resolve, and only once.
// @Tags        items
// @Produce     json
// @Param       id  path  string  true  "Item ID"
// @Success     200 {object} api.ItemResponse
// @Failure     400 {object} api.HTTPError
// @Failure     401 {object} api.HTTPError
// @Failure     403 {object} api.HTTPError
// @Failure     404 {object} api.HTTPError
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /items/{id}/resolve [patch]
func ResolveItemHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		it, err := svc.Resolve(c.Request().Context(), middleware.UserID(c), c.Param("id"))
		if err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusOK, api.ItemResponse{Success: true, Message: "Item marked as resolved", Item: it})
	}
}

// @Summary     Update an item
// @Description Partial update of title, description, category, location and image. Type, owner and resolution state cannot be changed and are ignored if sent.
// @Tags        items
// @Accept      json
// @Accept      multipart/form-data
// @Produce     json
// @Param       id          path     string true  "Item ID"
// @Param       title       formData string false "Title"
// @Param       description formData string false "Description"
// @Param       category    formData string false "Category"
// @Param       location    formData string false "Location"
// @Param       image       formData file   false "Replacement photo"
// @Success     200 {object} api.ItemResponse
// @Failure     400 {object} api.HTTPError
// @Failure     401 {object} api.HTTPError
// @Failure     403 {object} api.HTTPError
// @Failure     404 {object} api.HTTPError
// @Security    CookieAuth
// @Security    BearerAuth
// @Router      /items/{id} [put]
func UpdateItemHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch model.ItemPatch
		if api.IsJSON(c) {
			if err := c.Bind(&patch); err != nil {
				return api.BadRequest(c, "invalid request body")
			}
		} else {
			form, err := c.FormParams()
			if err != nil {
				return api.BadRequest(c, "invalid form data")
			}
			patch = model.ItemPatch{
				Title:       api.Optional(form, "title"),
				Description: api.Optional(form, "description"),
				Location:    api.Optional(form, "location"),
			}
			if cat := api.Optional(form, "category"); cat != nil {
				category := model.Category(*cat)
				patch.Category = &category
			}
		}
		patch.Image = nil

		image, err := api.FormFile(c, "image", asset.MaxItemImageSize)
		if err != nil {
			return api.Fail(c, err)
		}
		it, err := svc.Update(c.Request().Context(), middleware.UserID(c), c.Param("id"), patch, image)
		if err != nil {
			return api.Fail(c, err)
		}
		return c.JSON(http.StatusOK, api.ItemResponse{Success: true, Message: "Item updated successfully", Item: it})
	}
}
