// Package cli implements the qikoffice command line: flag parsing, the
// sub-commands and their wiring.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	qikoffice "github.com/qikoffice/qikoffice-go"
	"github.com/qikoffice/qikoffice-go/internal/fakeapi"
	"github.com/qikoffice/qikoffice-go/pkg/config"
	"github.com/qikoffice/qikoffice-go/pkg/logger"
	"github.com/qikoffice/qikoffice-go/pkg/qikofficetesting"
	"github.com/qikoffice/qikoffice-go/pkg/term"
)

// App holds what every command needs: configuration, the logger and the
// terminal streams.
type App struct {
	config  *config.Config
	logData *logger.LogData
	log     zerolog.Logger
	stdin   io.Reader
	stdout  io.Writer
}

func New(cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) (*App, error) {
	build, err := logger.New().FromBuffer(stderr).LevelString(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logData, err := build.FromPath(cfg.LogFile).Make()
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	return &App{
		config:  cfg,
		logData: logData,
		log:     logData.Logger,
		stdin:   stdin,
		stdout:  stdout,
	}, nil
}

func (a *App) Close() error {
	return a.logData.Close()
}

func (a *App) client() *qikoffice.Client {
	return qikoffice.NewClient(a.config.BackendURL,
		qikoffice.WithTimeout(a.config.HTTPTimeout),
		qikoffice.WithLogger(a.log),
	)
}

// Run drives the interactive session.
func (a *App) Run(ctx context.Context, _ *RunCommand) error {
	a.log.Info().Str("backend", a.config.BackendURL).Msg("starting session")
	session := term.NewSession(a.client(), a.stdin, a.stdout, a.log)
	if err := session.Run(ctx); err != nil {
		return err
	}
	a.log.Info().Str("stage", session.Pipeline().Stage().String()).Msg("session ended")
	return nil
}

// Serve runs the reference API until ctx is cancelled.
func (a *App) Serve(ctx context.Context, _ *ServeCommand) error {
	server := fakeapi.NewServer(a.config.ListenAddr, fakeapi.WithLogger(a.log))
	if err := server.Start(); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Qik Office API listening on %s\n", server.URL())

	<-ctx.Done()
	a.log.Info().Msg("shutting down server")
	if err := server.Stop(); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// Demo runs c.Users virtual users concurrently, verifies them and prints
// each final panel.
func (a *App) Demo(ctx context.Context, c *DemoCommand) error {
	users := make([]*qikofficetesting.VirtualUser, c.Users)
	g, gctx := errgroup.WithContext(ctx)
	for i := range users {
		vu := qikofficetesting.NewVirtualUser(i, a.config.BackendURL)
		vu.Client = a.client()
		users[i] = vu
		g.Go(func() error {
			if err := vu.RunScenario(gctx); err != nil {
				return err
			}
			return vu.Verify(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, vu := range users {
		fmt.Fprintf(a.stdout, "%s (%s)\n", vu.Name, vu.Email)
		term.Panel(a.stdout, vu.Panel)
		fmt.Fprintln(a.stdout)
	}
	a.log.Info().Int("users", len(users)).Msg("demo verified")
	return nil
}
