package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/starford/foliocal/internal/calendar"
	"github.com/starford/foliocal/internal/index"
	"github.com/starford/foliocal/internal/mcpserver"
	"github.com/starford/foliocal/internal/noteservice"
	"github.com/starford/foliocal/internal/printer"
	"github.com/starford/foliocal/internal/tui"
	"github.com/starford/foliocal/internal/view"
)

// RunTUI opens the interactive month view in the terminal.
func RunTUI(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// The terminal belongs to the UI, so logs go to a rotated file.
	if err := os.MkdirAll(filepath.Dir(cfg.App.LogFile), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	logFile := &lumberjack.Logger{
		Filename:   cfg.App.LogFile,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	defer logFile.Close()
	logger := newLogger(cfg, logFile)

	ws, err := openWorkspace(cfg, logger)
	if err != nil {
		return err
	}
	defer ws.Close()

	g, gCtx := errgroup.WithContext(ctx)
	gCtx, cancel := context.WithCancel(gCtx)
	defer cancel()

	m := tui.New(ws.vault, settingsSource(cfg),
		tui.WithContext(gCtx),
		tui.WithLogger(logger),
		tui.WithVaultRoot(cfg.Vault.Path),
		tui.WithDebounce(cfg.Refresh.Debounce),
	)
	ctrl := m.Controller()
	defer ctrl.Close()

	notify := func(kind, path string) {
		logger.Debug("tui: vault changed", slog.String("kind", kind), slog.String("path", path))
		ctrl.Notify(kind)
	}

	g.Go(func() error {
		if err := index.Watch(gCtx, ws.db, ws.store, cfg.Vault.Path, logger, notify); err != nil {
			logger.Error("watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})
	g.Go(func() error {
		return runResync(gCtx, cfg.Refresh.ResyncCron, ws.vault, logger, notify)
	})
	g.Go(func() error {
		defer cancel()
		if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(gCtx)).Run(); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// RunMCP serves the calendar tools over stdio.
func RunMCP(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// stdout carries the protocol.
	logger := newLogger(cfg, os.Stderr)

	ws, err := openWorkspace(cfg, logger)
	if err != nil {
		return err
	}
	defer ws.Close()

	svc := noteservice.NewService(ws.vault, view.NoopOpener, settingsSource(cfg), noteservice.WithLogger(logger))
	logger.Info("mcp: serving on stdio", slog.String("vault_path", cfg.Vault.Path))
	return mcpserver.New(svc).ServeStdio()
}

// MonthQuery selects what RunMonth prints. A nil Folder means the
// configured source folder; a zero Month means the current one.
type MonthQuery struct {
	Month  calendar.Month
	Folder *string
	Tags   []string
}

// RunMonth prints one month of the calendar and exits.
func RunMonth(ctx context.Context, q MonthQuery, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := newLogger(cfg, os.Stderr)

	ws, err := openWorkspace(cfg, logger)
	if err != nil {
		return err
	}
	defer ws.Close()

	svc := noteservice.NewService(ws.vault, view.NoopOpener, settingsSource(cfg), noteservice.WithLogger(logger))
	snap, err := svc.Month(ctx, noteservice.Query{Month: q.Month, Folder: q.Folder, Tags: q.Tags})
	if err != nil {
		return err
	}
	return printer.Month(app.out, snap)
}
