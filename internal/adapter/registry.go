package adapter

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(*slog.Logger) Adapter)
)

// Register adds an adapter factory for a URL scheme. Called by adapter
// implementations in their init() functions.
func Register(scheme string, factory func(*slog.Logger) Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[scheme] = factory
}

// IsRegistered checks whether a URL scheme has an adapter.
func IsRegistered(scheme string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[scheme]
	return ok
}

// ListSchemes returns all registered URL schemes (sorted).
func ListSchemes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	schemes := make([]string, 0, len(registry))
	for s := range registry {
		schemes = append(schemes, s)
	}
	sort.Strings(schemes)
	return schemes
}

// New resolves a connection URL to an adapter instance by its scheme.
// The connection is not opened; call Connect on the result.
func New(rawURL string, logger *slog.Logger) (Adapter, error) {
	scheme, _, ok := strings.Cut(rawURL, ":")
	if !ok || scheme == "" {
		return nil, fmt.Errorf("invalid connection URL %q: missing scheme", Redact(rawURL))
	}

	registryMu.RLock()
	factory, found := registry[strings.ToLower(scheme)]
	registryMu.RUnlock()
	if !found {
		return nil, &UnknownSchemeError{
			Scheme:    scheme,
			Available: ListSchemes(),
		}
	}
	return factory(logger), nil
}

// UnknownSchemeError is returned when no adapter handles a URL scheme.
type UnknownSchemeError struct {
	Scheme    string
	Available []string
}

func (e *UnknownSchemeError) Error() string {
	return fmt.Sprintf("unknown database URL scheme %q (available: %v)", e.Scheme, e.Available)
}

var urlCredPattern = regexp.MustCompile(`://(.+)@`)

// Redact masks credentials embedded in a connection URL so it can safely
// appear in logs and error messages.
func Redact(rawURL string) string {
	return urlCredPattern.ReplaceAllString(rawURL, "://***@")
}
