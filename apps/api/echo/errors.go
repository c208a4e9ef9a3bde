package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lotus/core"
	"github.com/trezcool/lotus/core/people"
	"github.com/trezcool/lotus/core/product"
)

var (
	errHttpNotFound        = echo.NewHTTPError(http.StatusNotFound, "not found")
	errHttpProductNotFound = echo.NewHTTPError(http.StatusNotFound, product.ErrNotFound.Error())
	errHttpRecordNotFound  = echo.NewHTTPError(http.StatusNotFound, people.ErrNotFound.Error())
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			message = core.TranslateErrors(origErr, translator)
		case *core.ValidationError:
			if origErr.Fields != nil {
				message = origErr.FieldMap()
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case product.TransportError:
			// the remote catalog failed: users get the generic message, details are logged
			code = http.StatusBadGateway
			message = origErr.Message()
			logger.Error(origErr.Message(), err, requestExtras(ctx))
		default: // any other error is a server error
			switch origErr {
			case product.ErrNotFound, people.ErrNotFound:
				code = http.StatusNotFound
				message = origErr.Error()
			default:
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg), requestExtras(ctx))

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func requestExtras(ctx echo.Context) map[string]interface{} {
	return map[string]interface{}{
		"request_id": ctx.Response().Header().Get(echo.HeaderXRequestID),
		"method":     ctx.Request().Method,
		"path":       ctx.Request().URL.Path,
	}
}
