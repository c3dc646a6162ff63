// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the crudweb
// project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for creation or removal of the tables.
//
//	./crudweb [-c /path/of/config.yaml]           # start web server
//	./crudweb db init [-c /path/of/config.yaml]
//	./crudweb db drop [-c /path/of/config.yaml]
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/clean-crud/pkg/adapter/config"
	"github.com/momeni/clean-crud/pkg/adapter/restful/gin/routes"
	"github.com/momeni/clean-crud/pkg/core/log"
	"github.com/momeni/clean-crud/pkg/core/repo"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds the wait for ongoing requests after a signal.
const shutdownTimeout = 10 * time.Second

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "crudweb",
	Short: "A minimal CRUD web backend for cars, users, and directories",
	Long: `A minimal CRUD web backend which exposes REST APIs for three
resources. Cars are kept in memory for the lifetime of the process,
while users and phone directories are persisted in a PostgreSQL
database using GORM. The database tables must be created beforehand
using the "db init" sub-command.`,
	RunE:         startWebServer,
	SilenceUsage: true,
}

func startWebServer(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	uc, err := c.NewUseCases(p)
	if err != nil {
		return fmt.Errorf("creating use cases: %w", err)
	}
	e, err := c.NewEngine()
	if err != nil {
		return fmt.Errorf("creating Gin engine: %w", err)
	}
	if err = routes.Register(e, uc); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	srv := &http.Server{
		Addr:              c.Gin.Address,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "web server is listening", slog.String("addr", srv.Addr))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err = <-errCh:
		return fmt.Errorf("running web server: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down web server")
	ctxShutdown, cancel := context.WithTimeout(
		context.Background(), shutdownTimeout,
	)
	defer cancel()
	if err = srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("shutting down web server: %w", err)
	}
	return nil
}

// loadConfig loads the cfgPath config file and installs its logger as
// the default slog logger.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	slog.SetDefault(c.Log.NewLogger(os.Stderr))
	slog.Debug("configs are loaded", slog.String("configs", c.String()))
	return c, nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The context which
// is passed to commands is canceled by SIGINT or SIGTERM signals.
func Execute() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
