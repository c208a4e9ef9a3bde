package echoapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/lotus/core"
)

var orderingParam = "ordering"

// Ordering binds `?ordering=name,-id`: a "-" prefix sorts descending.
type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.Ordering{Field: field, Ascending: !descending})
	}
}

// bindID parses the `:id` path param. Malformed IDs are reported as notFound.
func bindID(ctx echo.Context, notFound error) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}

// bindFields decodes a JSON object body. An empty body is an empty object.
func bindFields(ctx echo.Context) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	if ctx.Request().ContentLength == 0 {
		return data, nil
	}
	if err := ctx.Echo().JSONSerializer.Deserialize(ctx, &data); err != nil && err != io.EOF {
		if _, ok := err.(*echo.HTTPError); ok {
			return nil, err
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return data, nil
}
