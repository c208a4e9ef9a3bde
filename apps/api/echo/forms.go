package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/lotus/core/people"
)

// productForm mirrors the product validation rules.
var productForm = people.Schema{
	{Name: "title", Label: "Product Name", Input: people.InputText, Required: true},
	{Name: "price", Label: "Price", Input: people.InputNumber, Required: true},
	{Name: "image", Label: "Image URL", Input: people.InputURL, Required: true},
	{Name: "description", Label: "Description", Input: people.InputText},
}

type FormResponse struct {
	Kind   string         `json:"kind"`
	Fields []people.Field `json:"fields"`
}

func registerFormAPI(g *echo.Group) {
	g.GET("/forms/:kind", retrieveForm)
}

// retrieveForm returns the ordered inputs of the create/edit form of a kind.
func retrieveForm(ctx echo.Context) error {
	name := ctx.Param("kind")
	if name == "product" || name == "products" {
		return ctx.JSON(http.StatusOK, FormResponse{Kind: "product", Fields: productForm})
	}

	kind, ok := people.ParseKind(name)
	if !ok {
		return errHttpNotFound
	}
	schema, err := people.SchemaOf(kind)
	if err != nil {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, FormResponse{Kind: string(kind), Fields: schema})
}
