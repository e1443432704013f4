package scheme

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// gatedSource blocks Open until release is closed
type gatedSource struct {
	data    string
	err     error
	release chan struct{}
}

func (s *gatedSource) Name() string { return "gated" }

func (s *gatedSource) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.data)), nil
}

func TestLoadAsync_Ready(t *testing.T) {
	src := &gatedSource{data: sampleCSV, release: make(chan struct{})}
	core, logs := observer.New(zapcore.InfoLevel)

	c := LoadAsync(context.Background(), src, zap.New(core))
	assert.Equal(t, StateLoading, c.State())
	assert.Nil(t, c.Schemes())

	close(src.release)
	schemes, err := c.Wait(context.Background())
	require.NoError(t, err)

	assert.Len(t, schemes, 2)
	assert.Equal(t, StateReady, c.State())
	assert.NoError(t, c.Err())
	assert.Equal(t, 2, c.Progress().Rows)
	assert.Equal(t, 1, logs.FilterMessage("loaded schemes").Len())
}

func TestLoadAsync_FailureFallsBackToEmpty(t *testing.T) {
	src := &gatedSource{err: errors.New("connection refused"), release: make(chan struct{})}
	close(src.release)
	core, logs := observer.New(zapcore.WarnLevel)

	c := LoadAsync(context.Background(), src, zap.New(core))
	schemes, err := c.Wait(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, schemes)
	assert.Empty(t, schemes)
	assert.Equal(t, StateFailed, c.State())
	assert.EqualError(t, c.Err(), "connection refused")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "gated", entries[0].ContextMap()["source"])
}

func TestCatalog_WaitHonoursContext(t *testing.T) {
	src := &gatedSource{data: sampleCSV, release: make(chan struct{})}
	defer close(src.release)

	c := LoadAsync(context.Background(), src, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StateLoading, c.State())
}

func TestCatalog_Find(t *testing.T) {
	c := NewCatalog([]Scheme{
		{Name: "PM Kisan", Slug: "pm-kisan"},
		{Name: "Atal Pension", Slug: "apy"},
	})

	tests := []struct {
		identifier string
		want       string
	}{
		{"pm kisan", "PM Kisan"},
		{"APY", "Atal Pension"},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			got := c.Find(tt.identifier)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestCatalog_CategoriesAndLevels(t *testing.T) {
	c := NewCatalog([]Scheme{
		{Name: "a", Category: "Education, Health", Level: "Central"},
		{Name: "b", Category: "education", Level: "State"},
		{Name: "c", Category: "Agriculture"},
	})

	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, []CategoryCount{
		{Category: "Education", Count: 2},
		{Category: "Agriculture", Count: 1},
		{Category: "Health", Count: 1},
	}, c.Categories())
	assert.Equal(t, map[string]int{"Central": 1, "State": 2}, c.LevelCounts())
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", Snippet("short", 10))
	assert.Equal(t, "abcde...", Snippet("abcdefgh", 5))
	assert.Equal(t, "योजना...", Snippet("योजनाएं", 5))

	s := Scheme{}
	assert.Equal(t, FallbackDetails, s.DisplayDetails())
	assert.Equal(t, FallbackCardLevel, s.CardLevel())
	assert.Equal(t, FallbackLevel, s.DisplayLevel())
}
