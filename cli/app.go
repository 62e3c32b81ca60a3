// Package cli implements the loanpredictor command line application.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aouyang1/go-loanpredictor/artifact"
	"github.com/aouyang1/go-loanpredictor/config"
	"github.com/aouyang1/go-loanpredictor/logging"
	"github.com/goccy/go-json"
	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	artifactsFlag = &urfave.StringFlag{
		Name:  "artifacts",
		Usage: "Directory holding model_xgb.json, scaler.json and ohe.json",
	}

	logLevelFlag = &urfave.StringFlag{
		Name:  "log-level",
		Usage: "Log level [debug, info, warn, error]",
	}

	logFormatFlag = &urfave.StringFlag{
		Name:  "log-format",
		Usage: "Log format [text, json]",
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	*config.Config
	Loader *artifact.Loader
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 "loanpredictor",
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "Predict Kiva loan amounts and explain every prediction",
		Flags: []urfave.Flag{
			artifactsFlag,
			logLevelFlag,
			logFormatFlag,
		},
		Commands: []*urfave.Command{
			serveCmd,
			predictCmd,
			inspectCmd,
		},
		Before: func(c *urfave.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if c.IsSet(artifactsFlag.Name) {
				cfg.ArtifactDir = c.String(artifactsFlag.Name)
			}
			if c.IsSet(logLevelFlag.Name) {
				cfg.LogLevel = c.String(logLevelFlag.Name)
			}
			if c.IsSet(logFormatFlag.Name) {
				cfg.LogFormat = c.String(logFormatFlag.Name)
			}

			if err := logging.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
				return fmt.Errorf("initializing logging: %w", err)
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				Config: cfg,
				Loader: artifact.NewLoader(artifactPaths(cfg)),
			}
			return nil
		},
	}
}

func artifactPaths(cfg *config.Config) artifact.Paths {
	paths := artifact.NewDefaultPaths(cfg.ArtifactDir)
	if cfg.ModelFile != "" {
		paths.Model = cfg.ModelFile
	}
	if cfg.ScalerFile != "" {
		paths.Scaler = cfg.ScalerFile
	}
	if cfg.EncoderFile != "" {
		paths.Encoder = cfg.EncoderFile
	}
	return paths
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML, "yml":
		return yaml.NewEncoder(w).Encode(v)
	case formatJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(v)
	}
	return fmt.Errorf("%q, %w", format, ErrUnknownFormat)
}
