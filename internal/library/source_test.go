package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/nac-planner/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.json")
	content := `{
		"pain_points": [{"id": "pp-1", "title": "Rogue devices", "category": "visibility"}],
		"use_cases": [],
		"requirements": [{"id": "rq-1", "title": "PCI-DSS", "category": "compliance", "priority": "critical"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	lib, err := FileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, lib.PainPoints, 1)
	assert.Equal(t, "PCI-DSS", lib.Requirements[0].Title)
}

func TestFileSource_Missing(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}.Load(context.Background())
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse_SchemaViolation(t *testing.T) {
	_, err := Parse([]byte(`{"use_cases": [{"id": "uc-1"}]}`), "inline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestCachedSource_ServesWithinTTL(t *testing.T) {
	calls := 0
	src := SourceFunc(func(context.Context) (*Library, error) {
		calls++
		return &Library{UseCases: []types.UseCase{{ID: "uc-1"}}}, nil
	})

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewCachedSource(src, time.Minute, nil)
	cache.now = func() time.Time { return now }

	_, err := cache.Load(context.Background())
	require.NoError(t, err)
	_, err = cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	now = now.Add(2 * time.Minute)
	_, err = cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	cache.Invalidate()
	_, err = cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestCachedSource_StaleOnRefreshError(t *testing.T) {
	fail := false
	calls := 0
	src := SourceFunc(func(context.Context) (*Library, error) {
		calls++
		if fail {
			return nil, errors.New("db down")
		}
		return &Library{Requirements: []types.Requirement{{ID: "rq-1"}}}, nil
	})

	now := time.Now()
	cache := NewCachedSource(src, time.Second, nil)
	cache.now = func() time.Time { return now }

	first, err := cache.Load(context.Background())
	require.NoError(t, err)

	fail = true
	now = now.Add(time.Hour)
	second, err := cache.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 2, calls)

	// a failed refresh restarts the TTL window
	now = now.Add(500 * time.Millisecond)
	third, err := cache.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, third)
	assert.Equal(t, 2, calls)

	fail = false
	now = now.Add(time.Second)
	fourth, err := cache.Load(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, fourth)
	assert.Equal(t, 3, calls)
}

func TestCachedSource_ErrorWithoutSnapshot(t *testing.T) {
	cache := NewCachedSource(SourceFunc(func(context.Context) (*Library, error) {
		return nil, errors.New("boom")
	}), 0, nil)

	_, err := cache.Load(context.Background())
	assert.Error(t, err)
}

func TestCachedSource_ConcurrentLoads(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	cache := NewCachedSource(SourceFunc(func(context.Context) (*Library, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return &Library{}, nil
	}), 0, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cache.Load(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}

func TestStatic(t *testing.T) {
	lib := &Library{}
	got, err := Static(lib).Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, lib, got)
}
