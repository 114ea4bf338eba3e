package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"back2u/internal/asset"
	"back2u/internal/common"

	"github.com/labstack/echo/v4"
)

// FormFile reads an optional uploaded file. A missing field, or a request
// that is not multipart, yields nil.
func FormFile(c echo.Context, field string, limit int64) (*asset.File, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, common.Newf(common.ErrValidation, "invalid %s upload", field)
	}
	if fh.Size > limit {
		return nil, common.Newf(common.ErrValidation, "%s must be at most %dMB", field, limit>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if int64(len(data)) > limit {
		return nil, common.Newf(common.ErrValidation, "%s must be at most %dMB", field, limit>>20)
	}
	return &asset.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// Optional returns a pointer to form[key] when the key was sent at all.
func Optional(form url.Values, key string) *string {
	v, ok := form[key]
	if !ok || len(v) == 0 {
		return nil
	}
	s := v[0]
	return &s
}

// IsJSON reports whether the request body is JSON.
func IsJSON(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}
