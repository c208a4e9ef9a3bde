package echoapi_test

import (
	"net/http"
	"testing"

	. "github.com/trezcool/lotus/apps/api/echo"
	"github.com/trezcool/lotus/core/product"
)

func Test_productApi(t *testing.T) {
	app := setup(t)

	ruler := product.Product{ID: 3, Title: "Ruler", Price: 3, Image: "/ruler.png"}
	pencilHB := product.Product{ID: 1, Title: "Pencil HB", Price: 2.25, Image: "/pencil.png", Description: "graphite"}

	tests := []httpTest{
		{
			name: "list loads the catalog", path: "/v1/products", wantCode: http.StatusOK,
			wantData: marchallList(t, NewProductResponse(pencil), NewProductResponse(eraser)),
		},
		{
			name: "display values", path: "/v1/products/2", wantCode: http.StatusOK,
			wantData: []byte(`{"id":2,"title":"Eraser","price":0.75,"image":"/eraser.png","description":"soft","display_id":"#2","display_price":"$0.75"}`),
		},
		{
			name: "unknown product", path: "/v1/products/42", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "product not found"}),
		},
		{
			name: "malformed id", path: "/v1/products/abc", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "product not found"}),
		},
		{
			name: "create: invalid", method: http.MethodPost, path: "/v1/products",
			body:     []byte(`{"title":"  ","price":"abc","image":""}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"title": "Product name is required",
				"price": "Price must be entered",
				"image": "Image URL is required",
			}),
		},
		{
			name: "create: malformed json", method: http.MethodPost, path: "/v1/products",
			body: []byte(`{"title":`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "unexpected EOF"}),
		},
		{
			name: "create", method: http.MethodPost, path: "/v1/products",
			body:     []byte(`{"title":" Ruler ","price":"3","image":"/ruler.png"}`),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, NewProductResponse(ruler)),
		},
		{
			name: "created product is appended", path: "/v1/products", wantCode: http.StatusOK,
			wantData: marchallList(t, NewProductResponse(pencil), NewProductResponse(eraser), NewProductResponse(ruler)),
		},
		{
			name: "update", method: http.MethodPut, path: "/v1/products/1",
			body:     []byte(`{"title":"Pencil HB","price":2.25,"image":"/pencil.png","description":"graphite"}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, NewProductResponse(pencilHB)),
		},
		{
			name: "update: invalid", method: http.MethodPut, path: "/v1/products/1",
			body:     []byte(`{"title":"Pencil","price":0,"image":"/pencil.png"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"price": "Price must be entered"}),
		},
		{
			name: "delete", method: http.MethodDelete, path: "/v1/products/2", wantCode: http.StatusNoContent,
		},
		{
			name: "deleted product is gone", path: "/v1/products/2", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "product not found"}),
		},
		{
			name: "list after update & delete", path: "/v1/products", wantCode: http.StatusOK,
			wantData: marchallList(t, NewProductResponse(pencilHB), NewProductResponse(ruler)),
		},
	}
	runHTTPTests(t, app, tests)
}

func Test_productApi_remoteFailures(t *testing.T) {
	app := setup(t)

	loaded := marchallList(t, NewProductResponse(pencil), NewProductResponse(eraser))

	runHTTPTests(t, app, []httpTest{
		{name: "load", path: "/v1/products", wantCode: http.StatusOK, wantData: loaded},
	})
	app.catalog.setDown(true)

	runHTTPTests(t, app, []httpTest{
		{
			name: "refresh fails", path: "/v1/products?refresh=true", wantCode: http.StatusBadGateway,
			wantData: marchallObj(t, httpErr{Error: "failed to fetch products"}),
		},
		{name: "last known list is kept", path: "/v1/products", wantCode: http.StatusOK, wantData: loaded},
		{
			name: "create fails", method: http.MethodPost, path: "/v1/products",
			body:     []byte(`{"title":"Ruler","price":3,"image":"/ruler.png"}`),
			wantCode: http.StatusBadGateway,
			wantData: marchallObj(t, httpErr{Error: "failed to create product"}),
		},
		{
			name: "update fails", method: http.MethodPut, path: "/v1/products/1",
			body:     []byte(`{"title":"Pencil 2B","price":3,"image":"/pencil.png"}`),
			wantCode: http.StatusBadGateway,
			wantData: marchallObj(t, httpErr{Error: "failed to update product"}),
		},
		{
			name: "delete fails", method: http.MethodDelete, path: "/v1/products/2", wantCode: http.StatusBadGateway,
			wantData: marchallObj(t, httpErr{Error: "failed to delete product"}),
		},
		{name: "list is unchanged", path: "/v1/products", wantCode: http.StatusOK, wantData: loaded},
	})
}

func Test_productApi_firstLoadFails(t *testing.T) {
	app := setup(t)
	app.catalog.setDown(true)

	runHTTPTests(t, app, []httpTest{
		{
			name: "full page error", path: "/v1/products", wantCode: http.StatusBadGateway,
			wantData: marchallObj(t, httpErr{Error: "failed to fetch products"}),
		},
		{
			name: "detail too", path: "/v1/products/1", wantCode: http.StatusBadGateway,
			wantData: marchallObj(t, httpErr{Error: "failed to fetch products"}),
		},
	})
	app.catalog.setDown(false)

	runHTTPTests(t, app, []httpTest{
		{
			name: "retry succeeds", path: "/v1/products", wantCode: http.StatusOK,
			wantData: marchallList(t, NewProductResponse(pencil), NewProductResponse(eraser)),
		},
	})
}
