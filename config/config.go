package config

import (
	"errors"
	"flag"
	"io/fs"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config of the survey API.
type Config struct {
	Addr        string
	DBUrl       string
	CORSOrigins []string
	Debug       bool
}

// FormConfig of the form client.
type FormConfig struct {
	Addr   string
	APIUrl string
	Debug  bool
}

func ParseFlags(args []string) (cfg Config, err error) {
	flags := flag.NewFlagSet("care-survey", flag.ContinueOnError)
	var host string
	flags.StringVar(&host, "host", "0.0.0.0", "listen host name")
	var port uint
	flags.UintVar(&port, "port", 0, "listen port number (default $PORT or 3001)")
	flags.StringVar(&cfg.DBUrl, "db-url", "survey.db", "path to SQLite3 DB file")
	var origins string
	flags.StringVar(&origins, "cors-origin", "*", "comma separated origins allowed to call the API")
	flags.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	if err = flags.Parse(args); err != nil {
		return
	}

	port, err = portOrEnv(port, 3001)
	if err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if cfg.DBUrl == "" {
		err = errors.New("missing parameter -db-url")
	}
	return
}

func ParseFormFlags(args []string) (cfg FormConfig, err error) {
	flags := flag.NewFlagSet("survey-form", flag.ContinueOnError)
	var host string
	flags.StringVar(&host, "host", "0.0.0.0", "listen host name")
	var port uint
	flags.UintVar(&port, "port", 0, "listen port number (default $PORT or 3000)")
	flags.StringVar(&cfg.APIUrl, "api-url", "http://localhost:3001", "base URL of the survey API")
	flags.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	if err = flags.Parse(args); err != nil {
		return
	}

	port, err = portOrEnv(port, 3000)
	if err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.APIUrl = strings.TrimRight(cfg.APIUrl, "/")

	if cfg.APIUrl == "" {
		err = errors.New("missing parameter -api-url")
	}
	return
}

// LoadDotEnv reads a .env file from the working directory into the
// environment, if there is one. Variables already set are kept.
func LoadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func portOrEnv(port uint, def uint) (uint, error) {
	if port != 0 {
		return port, nil
	}
	env := os.Getenv("PORT")
	if env == "" {
		return def, nil
	}
	p, err := strconv.ParseUint(env, 10, 16)
	if err != nil {
		return 0, errors.New("invalid PORT env variable")
	}
	return uint(p), nil
}

func (cfg Config) Url() string {
	return url(cfg.Addr)
}

func (cfg FormConfig) Url() string {
	return url(cfg.Addr)
}

func url(addr string) string {
	addr = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(addr, "localhost")
	return "http://" + addr
}
