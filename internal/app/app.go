// Package app wires configuration, logging, the terminal and the session
// file around an editor.
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/afero"

	"github.com/kobzarvs/tedit/internal/config"
	"github.com/kobzarvs/tedit/internal/editor"
	"github.com/kobzarvs/tedit/internal/logger"
	"github.com/kobzarvs/tedit/internal/session"
	"github.com/kobzarvs/tedit/internal/storage"
	"github.com/kobzarvs/tedit/internal/terminal"
)

// Options are the command-line overrides.
type Options struct {
	ConfigPath string
	LogFile    string
	Debug      bool
	// MaxWidth overrides the configured reflow width when not negative.
	MaxWidth     int
	NoWrapCursor bool
	// SessionPath overrides the session file location.
	SessionPath string
}

// App is the top-level runtime for tedit.
type App struct {
	args []string
	opts Options
	fs   afero.Fs
}

func New(args []string, opts Options) *App {
	return &App{args: args, opts: opts, fs: afero.NewOsFs()}
}

func (a *App) Run() error {
	if err := logger.Init(a.opts.LogFile, a.opts.Debug); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	return a.runOn(s)
}

// runOn runs the editor on an initialized screen.
func (a *App) runOn(s tcell.Screen) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if a.opts.MaxWidth >= 0 {
		cfg.Editor.MaxWidth = a.opts.MaxWidth
	}
	if a.opts.NoWrapCursor {
		cfg.Editor.HorizontalWrap = false
	}
	km, err := editor.NewKeymap(cfg.Keymap)
	if err != nil {
		return err
	}

	var sess *session.Manager
	var positions editor.Positions
	if cfg.Editor.RememberPosition {
		path := a.opts.SessionPath
		if path == "" {
			if path, err = session.DefaultPath(); err != nil {
				logger.Warn("session disabled", "error", err)
			}
		}
		if path != "" {
			sess = session.NewManager(a.fs, path)
			positions = sessionPositions{m: sess}
		}
	}

	screen := terminal.New(s, cfg.Theme)
	ed := editor.New(editor.Options{
		MaxWidth:       cfg.Editor.MaxWidth,
		HorizontalWrap: cfg.Editor.HorizontalWrap,
		Keymap:         km,
		Keywords:       cfg.Syntax.Keywords,
		Positions:      positions,
	}, screen, screen, storage.New(a.fs))

	file := ""
	if len(a.args) > 0 {
		file = a.args[0]
	} else if sess != nil {
		// Without an argument, reopen the file edited last.
		file = sess.ActiveFile()
	}
	if file != "" {
		if err := ed.Open(file); err != nil {
			return err
		}
	}
	runErr := ed.Run()
	if sess != nil {
		if err := sess.Save(); err != nil {
			logger.Warn("save session", "error", err)
		}
	}
	return runErr
}

func (a *App) loadConfig() (config.Config, error) {
	if a.opts.ConfigPath != "" {
		return config.LoadFile(a.opts.ConfigPath)
	}
	return config.Load()
}
