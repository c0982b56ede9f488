// Command survey-form serves the survey as an HTML form and forwards
// submissions to the survey API.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/mbolis/care-survey/client"
	"github.com/mbolis/care-survey/config"
	"github.com/mbolis/care-survey/httpx"
	"github.com/mbolis/care-survey/log"
	"github.com/mbolis/care-survey/webform"
)

func main() {
	err := config.LoadDotEnv()
	if err != nil {
		log.Fatal("main.dotenv:", err)
	}

	cfg, err := config.ParseFormFlags(os.Args[1:])
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	api := client.New(cfg.APIUrl, &http.Client{Timeout: 10 * time.Second})
	h, err := webform.New(api)
	if err != nil {
		log.Fatal("main.templates:", err)
	}

	log.Infof("Listening on %s, survey API at %s", cfg.Url(), cfg.APIUrl)
	err = httpx.ListenAndServe(cfg.Addr, h.Routes())
	if err != nil {
		log.Error("main.server:", err)
	}
}
