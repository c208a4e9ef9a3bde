package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lotus/core"
	"github.com/trezcool/lotus/core/product"
	logsvc "github.com/trezcool/lotus/services/logger"
	"github.com/trezcool/lotus/storage/restapi"
)

func main() {
	conf := core.NewConfig()

	stdLogger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(false)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	product.InitValidators(validate, translator)

	productSvc := product.NewService(
		restapi.NewProductClient(conf.Catalog.BaseURL),
		product.NewList(),
		validate,
		translator,
		logger,
	)
	productSvc.SetPageSize(conf.Catalog.PageSize)

	// start CLI
	cli := commandLine{
		productSvc: productSvc,
		out:        os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			stdLogger.Printf("error: %s\n", describeErr(err))
		}
		os.Exit(1)
	}
}
