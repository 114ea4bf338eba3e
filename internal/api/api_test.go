package api

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"back2u/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestFail(t *testing.T) {
	e := echo.New()
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{common.Newf(common.ErrForbidden, "you can only modify your own items"), http.StatusForbidden, "you can only modify your own items"},
		{common.ErrNotFound, http.StatusNotFound, "resource not found"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, internalErrorMessage},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, Fail(c, tc.err))
		require.Equal(t, tc.status, rec.Code)
		require.Contains(t, rec.Body.String(), `"success":false`)
		require.Contains(t, rec.Body.String(), tc.body)
		require.NotContains(t, rec.Body.String(), "connection refused")
	}
}

func multipartRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("title", "Keys"))
	if field != "" {
		fw, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestFormFile(t *testing.T) {
	e := echo.New()

	c := e.NewContext(multipartRequest(t, "image", "keys.png", []byte("abc")), httptest.NewRecorder())
	f, err := FormFile(c, "image", 10)
	require.NoError(t, err)
	require.Equal(t, "keys.png", f.Filename)
	require.Equal(t, []byte("abc"), f.Data)

	c = e.NewContext(multipartRequest(t, "", "", nil), httptest.NewRecorder())
	f, err = FormFile(c, "image", 10)
	require.NoError(t, err)
	require.Nil(t, f)

	c = e.NewContext(multipartRequest(t, "image", "big.png", bytes.Repeat([]byte{1}, 3<<20)), httptest.NewRecorder())
	_, err = FormFile(c, "image", 2<<20)
	require.ErrorIs(t, err, common.ErrValidation)
	require.EqualError(t, err, "image must be at most 2MB")

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"title":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c = e.NewContext(req, httptest.NewRecorder())
	f, err = FormFile(c, "image", 10)
	require.NoError(t, err)
	require.Nil(t, f)
	require.True(t, IsJSON(c))
}

func TestOptional(t *testing.T) {
	form := url.Values{"title": {"Keys"}, "bio": {""}}
	require.Equal(t, "Keys", *Optional(form, "title"))
	require.Equal(t, "", *Optional(form, "bio"))
	require.Nil(t, Optional(form, "location"))
}
