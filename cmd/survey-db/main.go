// Command survey-db inspects and maintains the survey database.
package main

import (
	"os"

	"github.com/mbolis/care-survey/dbtool"
	"github.com/mbolis/care-survey/log"
)

func main() {
	log.SetLevel(log.WarnLevel)

	if err := dbtool.NewRootCommand(os.Stdout).Execute(); err != nil {
		log.Error("survey-db:", err)
		os.Exit(1)
	}
}
