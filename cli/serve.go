package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/aouyang1/go-loanpredictor/web"
	urfave "github.com/urfave/cli/v2"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 60
	serverMaxHeaderBytes      = 20
)

var (
	shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

	addrFlag = &urfave.StringFlag{
		Name:  "addr",
		Usage: "Address on which the server will listen",
	}

	noBrowserFlag = &urfave.BoolFlag{
		Name:    "no-browser",
		Aliases: []string{"nb"},
		Usage:   "Do not open browser automatically",
	}

	serveCmd = &urfave.Command{
		Name:    "serve",
		Aliases: []string{"server"},
		Usage:   "Start the local prediction web app",
		Action:  cmdServe,
		Flags: []urfave.Flag{
			addrFlag,
			noBrowserFlag,
		},
	}
)

func cmdServe(c *urfave.Context) error {
	cfg := getConfig(c)
	address := cfg.Addr
	if c.IsSet(addrFlag.Name) {
		address = c.String(addrFlag.Name)
	}

	p, err := newPredictor(cfg)
	if err != nil {
		return err
	}

	srv, err := web.New(p, &web.Options{
		NumericMin:   cfg.NumericMin,
		NumericMax:   cfg.NumericMax,
		NumericValue: cfg.NumericValue,
	})
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	s := &http.Server{
		Addr:           address,
		Handler:        srv.Routes(),
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, shutdownSignals...)

	errc := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	url := fmt.Sprintf("http://%s", address)
	slog.Info("server started", "address", url)

	if !c.Bool(noBrowserFlag.Name) {
		openBrowser(url)
	}

	select {
	case <-done:
	case err := <-errc:
		return fmt.Errorf("starting server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("error shutting down server", "error", err)
	}
	slog.Info("server stopped")
	return nil
}

func openBrowser(url string) {
	var cmd string
	args := make([]string, 0, 1)

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
	case "linux":
		cmd = "xdg-open"
	default: // windows
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler"}
	}

	args = append(args, url)
	if err := exec.Command(cmd, args...).Start(); err != nil {
		slog.Error("failed to open browser", "error", err)
	}
}
