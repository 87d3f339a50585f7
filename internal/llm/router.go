package llm

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// ProviderInfo contains information about an LLM provider
type ProviderInfo struct {
	Name       string   `json:"name"`
	Models     []string `json:"models"`
	Default    bool     `json:"default"`
	Configured bool     `json:"configured"`
}

// Router keeps the registered providers and picks one for the chat assistant
type Router struct {
	mu              sync.RWMutex
	providers       map[string]Provider
	defaultProvider string
}

// NewRouter creates a new LLM router
func NewRouter(defaultProvider string) *Router {
	return &Router{
		providers:       make(map[string]Provider),
		defaultProvider: defaultProvider,
	}
}

// RegisterProvider adds a provider, replacing any with the same name
func (r *Router) RegisterProvider(provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.Name()] = provider
}

// Lookup returns a registered provider whether or not it is configured
func (r *Router) Lookup(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// GetProvider returns a configured provider by name, or the default one when name is empty
func (r *Router) GetProvider(name string) (Provider, error) {
	if name == "" {
		name = r.defaultProvider
	}

	p, ok := r.Lookup(name)
	switch {
	case !ok:
		return nil, fmt.Errorf("provider not found: %s", name)
	case !p.IsConfigured():
		return nil, fmt.Errorf("provider not configured: %s", name)
	}
	return p, nil
}

// ListProviders returns the sorted names of configured providers
func (r *Router) ListProviders() []string {
	infos := lo.Filter(r.GetProvidersInfo(), func(info ProviderInfo, _ int) bool {
		return info.Configured
	})
	return lo.Map(infos, func(info ProviderInfo, _ int) string { return info.Name })
}

// DefaultProvider returns the default provider name
func (r *Router) DefaultProvider() string {
	return r.defaultProvider
}

// GetProvidersInfo describes every registered provider, sorted by name
func (r *Router) GetProvidersInfo() []ProviderInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := lo.MapToSlice(r.providers, func(name string, p Provider) ProviderInfo {
		return ProviderInfo{
			Name:       name,
			Models:     p.AvailableModels(),
			Default:    name == r.defaultProvider,
			Configured: p.IsConfigured(),
		}
	})
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Close releases providers that hold connections
func (r *Router) Close() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for name, p := range r.providers {
		if c, ok := p.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}
