package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"herdsos/config"
	"herdsos/database"
	"herdsos/router"

	// Cow
	cowCtrlImp "herdsos/pkg/cow/controllerImp"
	cowRepoImp "herdsos/pkg/cow/repositoryImp"

	// Hospital
	hospCtrlImp "herdsos/pkg/hospital/controllerImp"
	hospRepoImp "herdsos/pkg/hospital/repositoryImp"

	// Report
	reportCtrlImp "herdsos/pkg/report/controllerImp"
	reportRepoImp "herdsos/pkg/report/repositoryImp"
	reportSvcImp "herdsos/pkg/report/serviceImp"

	// Health
	healthCtrlImp "herdsos/pkg/health/controllerImp"

	"herdsos/pkg/middleware"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
}

func runServeCmd(_ *cobra.Command, _ []string) error {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Echo
	e := newServer(db, cfg)

	// 4) Start
	log.Printf("listening on :%s", cfg.Port)
	return e.Start(":" + cfg.Port)
}

// newServer wires repositories, services and controllers onto a fresh echo instance.
func newServer(db *gorm.DB, cfg config.AppConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.BodyLimit(cfg.MaxBody))
	// hospital pages poll the pending queue from other origins
	e.Use(echoMiddleware.CORS())

	hRepo := hospRepoImp.New(db)
	cRepo := cowRepoImp.New(db)
	rRepo := reportRepoImp.New(db)

	rSvc := reportSvcImp.New(rRepo, hRepo, cRepo)

	cCtrl := cowCtrlImp.New(cRepo)
	hCtrl := hospCtrlImp.New(hRepo, rSvc)
	rCtrl := reportCtrlImp.New(rSvc, hRepo)
	healthCtrl := healthCtrlImp.NewHealthCtrl(db)

	return router.New(
		e,
		middleware.HospitalScope(hRepo),
		cCtrl,
		hCtrl,
		rCtrl,
		healthCtrl,
	)
}
