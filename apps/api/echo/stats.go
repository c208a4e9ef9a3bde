package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lotus/core/people"
	"github.com/trezcool/lotus/core/product"
)

// StatsResponse feeds the dashboard cards. Products counts the local catalog and is
// 0 until it has been loaded.
type StatsResponse struct {
	Students       int  `json:"students"`
	Teachers       int  `json:"teachers"`
	Parents        int  `json:"parents"`
	Products       int  `json:"products"`
	ProductsLoaded bool `json:"products_loaded"`
	Pending        int  `json:"pending"`
}

func registerStatsAPI(g *echo.Group, productSvc *product.Service, peopleSvc *people.Service) {
	g.GET("/stats", func(ctx echo.Context) error {
		var stats StatsResponse
		counts := map[people.Kind]*int{
			people.KindStudent: &stats.Students,
			people.KindTeacher: &stats.Teachers,
			people.KindParent:  &stats.Parents,
		}
		for kind, dst := range counts {
			n, err := peopleSvc.Count(ctx.Request().Context(), kind)
			if err != nil {
				return errors.Wrapf(err, "counting %s", kind.Plural())
			}
			*dst = n
		}
		stats.Products = productSvc.Count()
		stats.ProductsLoaded = productSvc.Loaded()
		stats.Pending = productSvc.Pending()
		return ctx.JSON(http.StatusOK, stats)
	})
}
