package library

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jonathan/nac-planner/internal/schemas"
	"go.uber.org/zap"
)

// Source loads a library snapshot from some backing store.
type Source interface {
	Load(ctx context.Context) (*Library, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*Library, error)

// Load calls f(ctx).
func (f SourceFunc) Load(ctx context.Context) (*Library, error) {
	return f(ctx)
}

// Static returns a Source that always yields lib.
func Static(lib *Library) Source {
	return SourceFunc(func(context.Context) (*Library, error) {
		return lib, nil
	})
}

// FileSource loads the library from a JSON file validated against the library schema.
type FileSource struct {
	Path string
}

// Load reads and parses the file.
func (s FileSource) Load(_ context.Context) (*Library, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &LoadError{Source: s.Path, Message: "failed to read library file", Cause: err}
	}
	return Parse(data, s.Path)
}

// Parse decodes and validates library JSON. name is used in error messages.
func Parse(data []byte, name string) (*Library, error) {
	if err := schemas.ValidateLibrary(data); err != nil {
		return nil, &LoadError{Source: name, Message: "library failed schema validation", Cause: err}
	}

	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, &LoadError{Source: name, Message: "failed to parse library JSON", Cause: err}
	}
	return &lib, nil
}

// CachedSource memoizes another Source for TTL. A zero TTL caches forever.
// It is safe for concurrent use.
type CachedSource struct {
	next   Source
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu       sync.RWMutex
	lib      *Library
	loadedAt time.Time
}

// NewCachedSource wraps next with a TTL cache.
func NewCachedSource(next Source, ttl time.Duration, logger *zap.Logger) *CachedSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{next: next, ttl: ttl, logger: logger, now: time.Now}
}

// Load returns the cached snapshot, refreshing it when expired.
func (c *CachedSource) Load(ctx context.Context) (*Library, error) {
	c.mu.RLock()
	if c.fresh() {
		lib := c.lib
		c.mu.RUnlock()
		return lib, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock
	if c.fresh() {
		return c.lib, nil
	}

	lib, err := c.next.Load(ctx)
	if err != nil {
		if c.lib != nil {
			// Keep the stale snapshot for another TTL before retrying the source
			c.loadedAt = c.now()
			c.logger.Warn("library refresh failed, serving stale snapshot",
				zap.Error(err), zap.Duration("retry_in", c.ttl))
			return c.lib, nil
		}
		return nil, err
	}

	c.lib = lib
	c.loadedAt = c.now()
	c.logger.Debug("library loaded",
		zap.Int("pain_points", len(lib.PainPoints)),
		zap.Int("use_cases", len(lib.UseCases)),
		zap.Int("requirements", len(lib.Requirements)))
	return lib, nil
}

// Invalidate drops the cached snapshot.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	c.lib = nil
	c.mu.Unlock()
}

func (c *CachedSource) fresh() bool {
	if c.lib == nil {
		return false
	}
	return c.ttl == 0 || c.now().Sub(c.loadedAt) < c.ttl
}

// LoadError reports a failure to load the library from a source.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Source, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Source)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
