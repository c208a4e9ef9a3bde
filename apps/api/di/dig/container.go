package dig_container

import (
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/lotus/apps/api/echo"
	"github.com/trezcool/lotus/core"
	"github.com/trezcool/lotus/core/people"
	"github.com/trezcool/lotus/core/product"
	logsvc "github.com/trezcool/lotus/services/logger"
	"github.com/trezcool/lotus/storage/inmem"
	"github.com/trezcool/lotus/storage/restapi"
)

type CatalogLoggerParam struct {
	dig.In
	Logger core.Logger `name:"catalogLogger"`
}

type ServerParams struct {
	dig.In
	Conf       *core.Config
	Logger     core.Logger
	ProductSvc *product.Service
	PeopleSvc  *people.Service
	Translator ut.Translator
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newCatalogLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "CATALOG : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newValidate(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	product.InitValidators(validate, translator)
	return validate
}

func newProductClient(conf *core.Config) *restapi.ProductClient {
	return restapi.NewProductClient(conf.Catalog.BaseURL)
}

func newProductList() *product.List {
	return product.NewList()
}

func newProductService(
	conf *core.Config,
	client product.Client,
	list *product.List,
	validate *validator.Validate,
	translator ut.Translator,
	loggerParam CatalogLoggerParam,
) *product.Service {
	svc := product.NewService(client, list, validate, translator, loggerParam.Logger)
	svc.SetPageSize(conf.Catalog.PageSize)
	return svc
}

func newPeopleTable() *inmem.Table {
	return inmem.NewTable(people.SeedData())
}

func newServer(p ServerParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:       p.Conf,
		Logger:     p.Logger,
		ProductSvc: p.ProductSvc,
		PeopleSvc:  p.PeopleSvc,
		Translator: p.Translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newCatalogLogger, dig.Name("catalogLogger")))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidate))
	must(c.Provide(newProductClient, dig.As(new(product.Client))))
	must(c.Provide(newProductList))
	must(c.Provide(newProductService))
	must(c.Provide(newPeopleTable, dig.As(new(people.Repository))))
	must(c.Provide(people.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
