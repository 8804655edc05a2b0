package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/library-system/internal/api/middleware"
	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// currentPrincipal returns the identity established by the auth gate. Its
// absence on a protected route means the route was registered without the
// gate, which is a server fault rather than a client one.
func currentPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, domain.ErrGateMisconfigured
	}
	return p, nil
}

// idParam parses a positive numeric path parameter.
func idParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("invalid %s", name)
	}
	return id, nil
}

// pageRequest reads the shared list conventions: q, category and page.
// A missing page means the first page; anything that is not a positive
// integer is rejected.
func pageRequest(c echo.Context) (domain.PageRequest, error) {
	req := domain.PageRequest{
		Query:    strings.TrimSpace(c.QueryParam("q")),
		Category: strings.TrimSpace(c.QueryParam("category")),
		Page:     1,
	}

	if raw := strings.TrimSpace(c.QueryParam("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return domain.PageRequest{}, domain.NewValidationError("page must be a positive integer")
		}
		req.Page = page
	}
	return req, nil
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid payload")
	}
	return c.Validate(req)
}

// formUpload opens an optional multipart file. The returned close func is
// never nil.
func formUpload(c echo.Context, field string) (*ports.Upload, func() error, error) {
	noop := func() error { return nil }

	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, domain.NewValidationError("invalid %s upload", field)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}

	return &ports.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, f.Close, nil
}
