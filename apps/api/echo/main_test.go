package echoapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"

	. "github.com/trezcool/lotus/apps/api/echo"
	"github.com/trezcool/lotus/core"
	"github.com/trezcool/lotus/core/people"
	"github.com/trezcool/lotus/core/product"
	"github.com/trezcool/lotus/storage/inmem"
	"github.com/trezcool/lotus/storage/restapi"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

// fakeCatalog is an in-memory remote product service.
type fakeCatalog struct {
	mu       sync.Mutex
	products []product.Product
	nextID   int
	down     bool // answer every request with a 500
}

func newFakeCatalog(products ...product.Product) *fakeCatalog {
	f := &fakeCatalog{products: products}
	for _, p := range products {
		if p.ID > f.nextID {
			f.nextID = p.ID
		}
	}
	return f
}

func (f *fakeCatalog) setDown(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.down {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var id int
	if rest := strings.TrimPrefix(r.URL.Path, "/products"); rest != "" {
		var err error
		if id, err = strconv.Atoi(strings.TrimPrefix(rest, "/")); err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
	}

	var p product.Product
	if r.Method == http.MethodPost || r.Method == http.MethodPut {
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && id == 0:
		_ = json.NewEncoder(w).Encode(f.products)
	case r.Method == http.MethodPost && id == 0:
		f.nextID++
		p.ID = f.nextID
		f.products = append(f.products, p)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(p)
	case r.Method == http.MethodPut && id > 0:
		p.ID = id
		for i := range f.products {
			if f.products[i].ID == id {
				f.products[i] = p
			}
		}
		_ = json.NewEncoder(w).Encode(p)
	case r.Method == http.MethodDelete && id > 0:
		for i := range f.products {
			if f.products[i].ID == id {
				f.products = append(f.products[:i], f.products[i+1:]...)
				break
			}
		}
		_, _ = w.Write([]byte(`{}`))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

var (
	pencil = product.Product{ID: 1, Title: "Pencil", Price: 1.5, Image: "/pencil.png"}
	eraser = product.Product{ID: 2, Title: "Eraser", Price: 0.75, Image: "/eraser.png", Description: "soft"}
)

type app struct {
	*Server
	catalog *fakeCatalog
}

func setup(t *testing.T) app {
	t.Helper()

	catalog := newFakeCatalog(pencil, eraser)
	srv := httptest.NewServer(catalog)
	t.Cleanup(srv.Close)

	conf := &core.Config{
		AppName:  "LotusSoft",
		Env:      "TEST",
		TestMode: true,
		Role:     "admin",
	}
	logger := nopLogger{}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	product.InitValidators(validate, translator)

	productSvc := product.NewService(
		restapi.NewProductClient(srv.URL+"/products", srv.Client()),
		product.NewList(),
		validate,
		translator,
		logger,
	)
	peopleSvc := people.NewService(inmem.NewTable(people.SeedData()), validate, logger)

	server := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		ProductSvc:     productSvc,
		PeopleSvc:      peopleSvc,
		Translator:     translator,
		DisableReqLogs: true,
	})
	t.Cleanup(func() { _ = server.Close() })

	return app{Server: server, catalog: catalog}
}
