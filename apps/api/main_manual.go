package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/lotus/apps/api/echo"
	"github.com/trezcool/lotus/core"
	"github.com/trezcool/lotus/core/people"
	"github.com/trezcool/lotus/core/product"
	logsvc "github.com/trezcool/lotus/services/logger"
	"github.com/trezcool/lotus/storage/inmem"
	"github.com/trezcool/lotus/storage/restapi"
)

func startManual() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)
	defer logger.Close()

	catalogLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "CATALOG : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	catalogLogger.Enable(!conf.Debug)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	product.InitValidators(validate, translator)

	// set up services
	productSvc := product.NewService(
		restapi.NewProductClient(conf.Catalog.BaseURL),
		product.NewList(),
		validate,
		translator,
		catalogLogger,
	)
	productSvc.SetPageSize(conf.Catalog.PageSize)
	peopleSvc := people.NewService(inmem.NewTable(people.SeedData()), validate, logger)

	warmCatalog(productSvc, catalogLogger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.

	publishVars(conf, productSvc)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			ProductSvc: productSvc,
			PeopleSvc:  peopleSvc,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
