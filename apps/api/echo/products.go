package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lotus/core/product"
)

type productApi struct {
	svc *product.Service
}

func registerProductAPI(g *echo.Group, svc *product.Service) {
	api := productApi{svc: svc}

	catalog := catalogMiddleware(svc)

	pg := g.Group("/products")
	pg.GET("", api.query, catalog)
	pg.POST("", api.create)
	pg.GET("/:id", api.retrieve, catalog)
	pg.PUT("/:id", api.update)
	pg.DELETE("/:id", api.destroy)
}

// ProductResponse is a Product with its display values.
type ProductResponse struct {
	product.Product
	DisplayID    string `json:"display_id"`
	DisplayPrice string `json:"display_price"`
}

func NewProductResponse(p product.Product) ProductResponse {
	return ProductResponse{
		Product:      p,
		DisplayID:    product.FormatID(p.ID),
		DisplayPrice: product.FormatPrice(p.Price),
	}
}

// Handlers

func (api *productApi) query(ctx echo.Context) error {
	products := api.svc.Products()
	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, NewProductResponse(p))
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *productApi) retrieve(ctx echo.Context) error {
	id, err := bindID(ctx, errHttpProductNotFound)
	if err != nil {
		return err
	}
	p, err := api.svc.Get(id)
	if err != nil {
		return errors.Wrap(err, "finding product by ID")
	}
	return ctx.JSON(http.StatusOK, NewProductResponse(p))
}

func (api *productApi) create(ctx echo.Context) error {
	var data product.Candidate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Candidate")
	}

	p, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating product")
	}
	return ctx.JSON(http.StatusCreated, NewProductResponse(p))
}

func (api *productApi) update(ctx echo.Context) error {
	id, err := bindID(ctx, errHttpProductNotFound)
	if err != nil {
		return err
	}
	var data product.Candidate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Candidate")
	}

	p, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating product")
	}
	return ctx.JSON(http.StatusOK, NewProductResponse(p))
}

func (api *productApi) destroy(ctx echo.Context) error {
	id, err := bindID(ctx, errHttpProductNotFound)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting product")
	}
	return ctx.NoContent(http.StatusNoContent)
}
