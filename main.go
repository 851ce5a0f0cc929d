// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"log/slog"
	"os"

	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/db"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/router"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Parse configuration
	cfg, rest, err := cliparse.ParseFlags(args)
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		return middleware.ExitBadRequest
	}

	// Logs go to stderr so command output stays parseable
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		return middleware.ExitInternal
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		return middleware.ExitInternal
	}
	slog.Debug("Database schema ready", "type", cfg.DatabaseType)

	// Run the command
	r := router.NewRouter(dbConn, cfg, os.Stdin, os.Stdout)
	if err := r.Dispatch(rest); err != nil {
		return middleware.ErrorResponse(os.Stderr, cfg.Output, err)
	}
	return middleware.ExitOK
}
