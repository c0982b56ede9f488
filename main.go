package main

import (
	"os"

	"github.com/mbolis/care-survey/app"
	"github.com/mbolis/care-survey/config"
	"github.com/mbolis/care-survey/database"
	"github.com/mbolis/care-survey/httpx"
	"github.com/mbolis/care-survey/log"
	"github.com/mbolis/care-survey/routes"
)

func main() {
	err := config.LoadDotEnv()
	if err != nil {
		log.Fatal("main.dotenv:", err)
	}

	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()
	log.Info("Database schema ready")

	app := app.App{
		Store:  database.NewStore(db),
		Config: cfg,
	}

	handler := routes.Wire(app)

	log.Info("Listening on " + cfg.Url())
	err = httpx.ListenAndServe(cfg.Addr, handler)
	if err != nil {
		log.Error("main.server:", err)
	}
}
