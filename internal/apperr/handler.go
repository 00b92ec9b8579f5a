package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/karyawanmag/content-api/pkg/response"
	"github.com/labstack/echo/v4"
)

// GlobalErrorHandler maps the apperr family onto the response envelope.
// Anything outside the family is a server error: logged, body kept generic.
func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = response.Fail(c, http.StatusBadRequest, ve.Message, nil)
			return
		}

		var nf *NotFoundError
		if errors.As(err, &nf) {
			_ = response.Fail(c, http.StatusNotFound, nf.Message, nil)
			return
		}

		var ue *UnauthorizedError
		if errors.As(err, &ue) {
			_ = response.Fail(c, http.StatusUnauthorized, ue.Message, nil)
			return
		}

		var fe *ForbiddenError
		if errors.As(err, &fe) {
			_ = response.Fail(c, http.StatusForbidden, fe.Message, nil)
			return
		}

		var ce *ConflictError
		if errors.As(err, &ce) {
			_ = response.Fail(c, http.StatusConflict, ce.Message, nil)
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = response.Fail(c, he.Code, fmt.Sprintf("%v", he.Message), nil)
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = response.Fail(c, http.StatusInternalServerError, "Server Error", nil)
	}
}
