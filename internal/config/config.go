package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	// MaxWidth is the reflow width; 0 follows the terminal width.
	MaxWidth         int  `toml:"max-width"`
	HorizontalWrap   bool `toml:"horizontal-wrap"`
	RememberPosition bool `toml:"remember-position"`
}

type Theme struct {
	Theme                string `toml:"theme"`
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	SyntaxKeyword        string `toml:"syntax-keyword"`
}

type Syntax struct {
	Keywords []string `toml:"keywords"`
}

type Config struct {
	Editor EditorOptions     `toml:"editor"`
	Theme  Theme             `toml:"theme"`
	Keymap map[string]string `toml:"keymap"`
	Syntax Syntax            `toml:"syntax"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			MaxWidth:         80,
			HorizontalWrap:   true,
			RememberPosition: true,
		},
		Theme: Theme{
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			StatuslineForeground: "#B3B1AD",
			StatuslineBackground: "#0F1419",
			SyntaxKeyword:        "#FFA759",
		},
		Keymap: map[string]string{
			"backspace": "backspace",
			"enter":     "enter",
			"up":        "up",
			"down":      "down",
			"left":      "left",
			"right":     "right",
			"ctrl+s":    "save",
			"ctrl+o":    "load",
			"ctrl+q":    "exit",
			"ctrl+z":    "undo",
			"ctrl+y":    "redo",
			"esc":       "cancel",
		},
		Syntax: Syntax{
			Keywords: []string{
				"break", "case", "chan", "const", "continue", "default", "defer",
				"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
				"interface", "map", "package", "range", "return", "select",
				"struct", "switch", "type", "var",
				"char", "class", "do", "enum", "include", "int", "void", "while",
			},
		},
	}
}

// Load returns the defaults overlaid with config.toml from ConfigDir. A
// missing file is not an error.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, err
	}

	if md.IsDefined("editor", "max-width") {
		cfg.Editor.MaxWidth = userCfg.Editor.MaxWidth
	}
	if md.IsDefined("editor", "horizontal-wrap") {
		cfg.Editor.HorizontalWrap = userCfg.Editor.HorizontalWrap
	}
	if md.IsDefined("editor", "remember-position") {
		cfg.Editor.RememberPosition = userCfg.Editor.RememberPosition
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}
	if md.IsDefined("syntax", "keywords") {
		cfg.Syntax.Keywords = userCfg.Syntax.Keywords
	}
	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.SyntaxKeyword != "" {
		dst.SyntaxKeyword = src.SyntaxKeyword
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads a named theme. The file may hold the keys at top level or
// inside a [theme] table.
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	md, err := toml.Decode(string(data), &wrap)
	if err != nil {
		return Theme{}, err
	}
	if md.IsDefined("theme") {
		return wrap.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("TEDIT_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "tedit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
