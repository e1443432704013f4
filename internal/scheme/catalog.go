package scheme

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// LoadState represents where the catalog is in its one-shot load
type LoadState string

const (
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateFailed  LoadState = "failed"
)

// Progress describes a load in flight
type Progress struct {
	State     LoadState
	Rows      int
	StartedAt time.Time
}

// Elapsed returns how long the load has been running
func (p Progress) Elapsed() time.Duration {
	if p.StartedAt.IsZero() {
		return 0
	}
	return time.Since(p.StartedAt)
}

// Catalog holds the schemes for a session.
// It is filled once, either from memory or by a background load.
type Catalog struct {
	mu        sync.RWMutex
	state     LoadState
	schemes   []Scheme
	err       error
	startedAt time.Time
	rows      atomic.Int64
	done      chan struct{}
}

// NewCatalog returns a ready catalog over the given schemes
func NewCatalog(schemes []Scheme) *Catalog {
	c := &Catalog{
		state:   StateReady,
		schemes: schemes,
		done:    make(chan struct{}),
	}
	c.rows.Store(int64(len(schemes)))
	close(c.done)
	return c
}

// LoadAsync starts loading src in the background and returns immediately.
// A failed load leaves the catalog empty in StateFailed; it is never retried.
func LoadAsync(ctx context.Context, src Source, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Catalog{
		state:     StateLoading,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}

	go func() {
		defer close(c.done)

		logger.Debug("loading schemes", zap.String("source", src.Name()))
		schemes, err := Load(ctx, src, LoadOptions{
			Progress: func(rows int) { c.rows.Store(int64(rows)) },
		})

		c.mu.Lock()
		defer c.mu.Unlock()

		if err != nil {
			logger.Warn("failed to load schemes, continuing with none",
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			c.state = StateFailed
			c.schemes = []Scheme{}
			c.err = err
			return
		}

		logger.Info("loaded schemes",
			zap.String("source", src.Name()),
			zap.Int("count", len(schemes)),
			zap.Duration("took", time.Since(c.startedAt)),
		)
		c.state = StateReady
		c.schemes = schemes
	}()

	return c
}

// State returns the current load state
func (c *Catalog) State() LoadState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Progress returns a snapshot of the load progress
func (c *Catalog) Progress() Progress {
	return Progress{
		State:     c.State(),
		Rows:      int(c.rows.Load()),
		StartedAt: c.startedAt,
	}
}

// Done is closed once the catalog has left StateLoading
func (c *Catalog) Done() <-chan struct{} {
	return c.done
}

// Err returns the load error, if the load failed
func (c *Catalog) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Wait blocks until loading finishes and returns the schemes.
// A failed load returns an empty slice; check Err for the cause.
func (c *Catalog) Wait(ctx context.Context) ([]Scheme, error) {
	select {
	case <-c.done:
		return c.Schemes(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Schemes returns the loaded schemes, or nil while still loading
func (c *Catalog) Schemes() []Scheme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.schemes
}

// Len returns the number of loaded schemes
func (c *Catalog) Len() int {
	return len(c.Schemes())
}

// Find looks a scheme up by name, then by slug, ignoring case
func (c *Catalog) Find(identifier string) *Scheme {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil
	}

	schemes := c.Schemes()
	for i := range schemes {
		if strings.EqualFold(schemes[i].Name, identifier) {
			return &schemes[i]
		}
	}
	for i := range schemes {
		if schemes[i].Slug != "" && strings.EqualFold(schemes[i].Slug, identifier) {
			return &schemes[i]
		}
	}
	return nil
}

// CategoryCount is a category label with the number of schemes carrying it
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Categories returns distinct category labels, most common first
func (c *Catalog) Categories() []CategoryCount {
	counts := make(map[string]int)
	labels := make(map[string]string)
	for _, s := range c.Schemes() {
		for _, label := range s.Categories() {
			key := strings.ToLower(label)
			if _, ok := labels[key]; !ok {
				labels[key] = label
			}
			counts[key]++
		}
	}

	result := make([]CategoryCount, 0, len(counts))
	for key, n := range counts {
		result = append(result, CategoryCount{Category: labels[key], Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// LevelCounts returns the number of schemes per jurisdiction level
func (c *Catalog) LevelCounts() map[string]int {
	counts := make(map[string]int)
	for _, s := range c.Schemes() {
		counts[s.CardLevel()]++
	}
	return counts
}
