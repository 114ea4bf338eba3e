package handler

import (
	"context"
	"net/http"

	"back2u/internal/api"
	"back2u/internal/model"

	"github.com/labstack/echo/v4"
)

// AssetSource looks up stored uploads.
type AssetSource interface {
	Open(ctx context.Context, id string) (*model.Asset, error)
}

// GetAssetHandler serves an uploaded image.
// @Summary     Get an uploaded image
// @Tags        assets
// @Produce     image/jpeg
// @Param       id  path  string  true  "Asset ID"
// @Success     200 {file} binary
// @Failure     404 {object} api.HTTPError
// @Router      /assets/{id} [get]
func GetAssetHandler(src AssetSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		a, err := src.Open(c.Request().Context(), c.Param("id"))
		if err != nil {
			return api.Fail(c, err)
		}
		c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		return c.Blob(http.StatusOK, a.ContentType, a.Data)
	}
}
