package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lotus/core/people"
)

var errRecordNotFoundInCtx = errors.New("record not found in echo.Context")

type peopleApi struct {
	svc *people.Service
}

// registerPeopleAPI serves /students, /teachers & /parents.
func registerPeopleAPI(g *echo.Group, svc *people.Service) {
	api := peopleApi{svc: svc}

	for _, kind := range people.Kinds {
		kg := g.Group("/"+kind.Plural(), kindMiddleware(kind))
		kg.GET("", api.query)
		kg.POST("", api.create)

		// detail endpoints
		dg := kg.Group("/:id", recordMiddleware(svc))
		dg.GET("", api.retrieve)
		dg.PUT("", api.update)
		dg.DELETE("", api.destroy)
	}
}

// Handlers

func (api *peopleApi) query(ctx echo.Context) error {
	filter := new(people.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []people.Record{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	records, err := api.svc.Query(ctx.Request().Context(), contextKind(ctx), *filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying records")
	}
	if records == nil {
		records = []people.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *peopleApi) create(ctx echo.Context) error {
	data, err := bindFields(ctx)
	if err != nil {
		return errors.Wrap(err, "binding fields")
	}

	rec, err := api.svc.Create(ctx.Request().Context(), contextKind(ctx), data)
	if err != nil {
		return errors.Wrap(err, "creating record")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *peopleApi) retrieve(ctx echo.Context) error {
	rec, ok := ctx.Get(contextObjectKey).(people.Record)
	if !ok {
		return errors.Wrap(errRecordNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *peopleApi) update(ctx echo.Context) error {
	rec, ok := ctx.Get(contextObjectKey).(people.Record)
	if !ok {
		return errors.Wrap(errRecordNotFoundInCtx, "retrieving object from context")
	}
	data, err := bindFields(ctx)
	if err != nil {
		return errors.Wrap(err, "binding fields")
	}

	rec, err = api.svc.Update(ctx.Request().Context(), rec.Kind, rec.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating record")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *peopleApi) destroy(ctx echo.Context) error {
	rec, ok := ctx.Get(contextObjectKey).(people.Record)
	if !ok {
		return errors.Wrap(errRecordNotFoundInCtx, "retrieving object from context")
	}
	if err := api.svc.Delete(ctx.Request().Context(), rec.Kind, rec.ID); err != nil {
		return errors.Wrap(err, "deleting record")
	}
	return ctx.NoContent(http.StatusNoContent)
}
