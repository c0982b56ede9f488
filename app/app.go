package app

import (
	"github.com/mbolis/care-survey/config"
	"github.com/mbolis/care-survey/database"
)

// App carries the dependencies shared by the API handlers. It is built once
// in main and passed down, nothing here is global.
type App struct {
	*database.Store
	config.Config
}
