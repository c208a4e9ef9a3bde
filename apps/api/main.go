package main

import (
	"context"
	"expvar"
	"flag"
	"fmt"
	"os"

	"github.com/trezcool/lotus/core"
	"github.com/trezcool/lotus/core/product"
)

func main() {
	fs := flag.NewFlagSet("api", flag.ExitOnError)
	withDig := fs.Bool("dig", os.Getenv("LOTUS_API_DI") == "dig", "wire dependencies with the dig container")
	_ = fs.Parse(os.Args[1:])

	if *withDig {
		startWithDig()
		return
	}
	startManual()
}

// publishVars exposes important info under /debug/vars.
func publishVars(conf *core.Config, productSvc *product.Service) {
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.Publish("products", expvar.Func(func() interface{} { return productSvc.Count() }))
	expvar.Publish("products_pending", expvar.Func(func() interface{} { return productSvc.Pending() }))
}

// warmCatalog fetches the product list once in the background.
// A failure is only logged: the first product request retries the load.
func warmCatalog(productSvc *product.Service, logger core.Logger) {
	go func() {
		if err := productSvc.Load(context.Background()); err != nil {
			logger.Warn(fmt.Sprintf("initial catalog load: %v", err), err)
			return
		}
		logger.Info(fmt.Sprintf("catalog loaded : %d products", productSvc.Count()))
	}()
}
