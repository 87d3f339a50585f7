// Package availability renders live course availability as conversation context.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/teetime/internal/domain"
)

// Cache stores rendered context text by key
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, text string, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// Option configures a Provider
type Option func(*Provider)

// WithCache reuses a rendered context for up to ttl while the data version is unchanged
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(p *Provider) {
		p.cache = cache
		p.ttl = ttl
	}
}

// WithLocation sets the timezone that decides what "today" is
func WithLocation(loc *time.Location) Option {
	return func(p *Provider) { p.loc = loc }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// Provider builds the database context for the booking assistant
type Provider struct {
	repo  domain.AvailabilityRepository
	cache Cache
	ttl   time.Duration
	loc   *time.Location
	now   func() time.Time
}

// NewProvider creates a new availability provider
func NewProvider(repo domain.AvailabilityRepository, opts ...Option) *Provider {
	p := &Provider{
		repo: repo,
		loc:  time.UTC,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.loc == nil {
		p.loc = time.UTC
	}
	return p
}

// LoadLocation resolves an IANA timezone name, falling back to UTC
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("timezone", name).Msg("Unknown timezone, using UTC")
		return time.UTC
	}
	return loc
}

// Context returns the rendered availability for today and tomorrow
func (p *Provider) Context(ctx context.Context) (string, error) {
	now := p.now().In(p.loc)
	today := now.Format(domain.DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(domain.DateLayout)

	key, cached := p.cacheKey(ctx, today)
	if cached {
		text, ok, err := p.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Msg("Context cache read failed")
		} else if ok {
			return text, nil
		}
	}

	rows, err := p.repo.CourseAvailability(ctx, today, tomorrow)
	if err != nil {
		return "", fmt.Errorf("failed to query course availability: %w", err)
	}

	text := Render(rows)

	// a write during the query bumps the version, so this entry is never read
	if cached {
		if err := p.cache.Set(ctx, key, text, p.ttl); err != nil {
			log.Warn().Err(err).Msg("Context cache write failed")
		}
	}

	return text, nil
}

// cacheKey ties a cache entry to the date and the data version read before querying.
// Caching is skipped when the version cannot be read.
func (p *Provider) cacheKey(ctx context.Context, today string) (string, bool) {
	if p.cache == nil || p.ttl <= 0 {
		return "", false
	}
	version, err := p.repo.DataVersion(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Data version unavailable, bypassing context cache")
		return "", false
	}
	return fmt.Sprintf("%s:v%d", today, version), true
}

// Invalidate drops cached context after course or tee time changes
func (p *Provider) Invalidate(ctx context.Context) error {
	if p.cache == nil {
		return nil
	}
	if err := p.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("failed to invalidate context cache: %w", err)
	}
	return nil
}
