// Package session holds the per-connection REPL state: the typed settings
// store and the session aggregate that owns the connection, the last query,
// its bound parameters and its result.
package session

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSetting is returned when a setting is absent from both the
// session overrides and the built-in defaults.
var ErrUnknownSetting = errors.New("unknown setting")

// Built-in setting names. Only these are canonicalized; arbitrary \set
// variables are stored under the name as given.
const (
	SettingPager      = "pager"
	SettingFooter     = "footer"
	SettingAutocommit = "autocommit"
	SettingFormat     = "format"
)

// Render format identifiers understood by the presenter.
const (
	FormatAligned   = "aligned"
	FormatUnaligned = "unaligned"
	FormatCSV       = "csv"
	FormatHTML      = "html"
	FormatMarkdown  = "markdown"
)

// Settings is the typed session settings store. The zero value is not
// usable; construct with NewSettings so every recognized setting has its
// built-in default.
type Settings struct {
	Pager      bool
	Footer     bool
	Autocommit bool
	Format     string
	// AlignStrings mirrors the renderer's string-alignment option; formats
	// that imply unaligned output (unaligned, csv) switch it off.
	AlignStrings bool
	// ShowIndex asks the renderer for a leading row-index column.
	ShowIndex bool

	// Vars holds free-form \set variables, keyed by the name as given.
	Vars map[string]string
}

// NewSettings returns a settings store at the built-in defaults.
func NewSettings() *Settings {
	return &Settings{
		Pager:        true,
		Footer:       true,
		Autocommit:   true,
		Format:       FormatAligned,
		AlignStrings: true,
		Vars:         make(map[string]string),
	}
}

// ParseBool coerces a boolean-like token. It recognizes on/true/1 and
// off/false/0, case-insensitively. The second return reports whether the
// token was recognized; callers must leave the prior value unchanged when
// it was not.
func ParseBool(token string) (value, ok bool) {
	switch strings.ToLower(token) {
	case "on", "true", "1":
		return true, true
	case "off", "false", "0":
		return false, true
	}
	return false, false
}

// Get returns the value for the given setting name, case-insensitively for
// the built-in names. Free-form variables are looked up by exact name. A
// name absent from both is an ErrUnknownSetting.
func (s *Settings) Get(name string) (any, error) {
	switch strings.ToLower(name) {
	case SettingPager:
		return s.Pager, nil
	case SettingFooter:
		return s.Footer, nil
	case SettingAutocommit:
		return s.Autocommit, nil
	case SettingFormat:
		return s.Format, nil
	}
	if v, ok := s.Vars[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, name)
}

// SetPrint handles the \pset namespace: a fixed set of recognized print
// options. Boolean options use ParseBool coercion; an unrecognized token
// leaves the prior value unchanged and is not an error. An unrecognized
// option name is an ErrUnknownSetting.
func (s *Settings) SetPrint(name, value string) error {
	switch strings.ToLower(name) {
	case SettingPager:
		if v, ok := ParseBool(value); ok {
			s.Pager = v
		}
	case SettingFooter:
		if v, ok := ParseBool(value); ok {
			s.Footer = v
		}
	case SettingFormat:
		s.SetFormat(value)
	default:
		return fmt.Errorf("%w: \\pset %s", ErrUnknownSetting, name)
	}
	return nil
}

// SetNamed handles the \set namespace: built-in names (pager, footer,
// autocommit) are canonicalized case-insensitively and coerced; any other
// name is stored verbatim under the name as given.
func (s *Settings) SetNamed(name, value string) {
	switch strings.ToLower(name) {
	case SettingPager:
		if v, ok := ParseBool(value); ok {
			s.Pager = v
		}
	case SettingFooter:
		if v, ok := ParseBool(value); ok {
			s.Footer = v
		}
	case SettingAutocommit:
		if v, ok := ParseBool(value); ok {
			s.Autocommit = v
		}
	default:
		s.Vars[name] = value
	}
}

// SetFormat resolves a table format alias to the renderer's format
// identifier. Formats that imply unaligned output also disable string
// alignment; unknown aliases pass through to the renderer verbatim.
func (s *Settings) SetFormat(alias string) {
	switch strings.ToLower(alias) {
	case FormatAligned:
		s.Format = FormatAligned
		s.AlignStrings = true
	case FormatUnaligned:
		s.Format = FormatUnaligned
		s.AlignStrings = false
	case FormatCSV:
		s.Format = FormatCSV
		s.AlignStrings = false
	case FormatHTML:
		s.Format = FormatHTML
	case FormatMarkdown, "md":
		s.Format = FormatMarkdown
	default:
		s.Format = alias
	}
}
