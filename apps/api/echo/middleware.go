package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lotus/core/people"
	"github.com/trezcool/lotus/core/product"
)

var (
	contextKindKey   = "kind"
	contextObjectKey = "object"

	refreshParam = "refresh"
)

// catalogMiddleware loads the catalog on first use, or again when `?refresh=true` is passed.
// A failed load stops the request with the load's error.
func catalogMiddleware(svc *product.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			var err error
			if refresh, _ := strconv.ParseBool(ctx.QueryParam(refreshParam)); refresh {
				err = svc.Load(ctx.Request().Context())
			} else {
				err = svc.EnsureLoaded(ctx.Request().Context())
			}
			if err != nil {
				return errors.Wrap(err, "loading catalog")
			}
			return next(ctx)
		}
	}
}

// kindMiddleware sets the people.Kind served by a route group.
func kindMiddleware(kind people.Kind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(contextKindKey, kind)
			return next(ctx)
		}
	}
}

// recordMiddleware finds the record of the `:id` path param and sets it as the context object.
func recordMiddleware(svc *people.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := bindID(ctx, errHttpRecordNotFound)
			if err != nil {
				return err
			}
			rec, err := svc.Get(ctx.Request().Context(), contextKind(ctx), id)
			if err != nil {
				if errors.Cause(err) == people.ErrNotFound {
					return errHttpRecordNotFound
				}
				return errors.Wrap(err, "finding record by ID")
			}
			ctx.Set(contextObjectKey, rec)
			return next(ctx)
		}
	}
}

func contextKind(ctx echo.Context) people.Kind {
	kind, _ := ctx.Get(contextKindKey).(people.Kind)
	return kind
}
