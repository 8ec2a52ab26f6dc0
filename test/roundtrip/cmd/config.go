package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zostay/go-mimetree/message"
)

const envPrefix = "roundtrip"

// Config holds the settings read from ROUNDTRIP_* environment variables.
type Config struct {
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info" desc:"debug, info, warn, or error"`
	IncludeBcc   bool   `envconfig:"INCLUDE_BCC" default:"false" desc:"Write Bcc fields into built messages"`
	BaseBoundary string `envconfig:"BASE_BOUNDARY" desc:"Fixed base for generated boundaries, random when empty"`
}

const usageFormat = `
KEY	DEFAULT	DESCRIPTION
{{range .}}{{usage_key .}}	{{usage_default .}}	{{usage_description .}}
{{end}}`

func loadConfig() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, err
	}
	return c, nil
}

func usage(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	if err := envconfig.Usagef(envPrefix, &Config{}, tw, usageFormat); err != nil {
		return err
	}
	return tw.Flush()
}

// Options returns the node options that follow the configuration.
func (c *Config) Options() []message.Option {
	opts := []message.Option{
		message.WithLogger(log.Logger),
		message.WithIncludeBccInHeader(c.IncludeBcc),
	}

	if c.BaseBoundary != "" {
		opts = append(opts, message.WithBaseBoundary(c.BaseBoundary))
	}

	return opts
}

func openLog(level string) error {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		return fmt.Errorf("log level %q not one of: debug, info, warn, error", level)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        zerolog.SyncWriter(os.Stderr),
		NoColor:    runtime.GOOS == "windows",
		TimeFormat: "15:04:05",
	})

	return nil
}
