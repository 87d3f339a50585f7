package handler

import (
	"context"
	"net/http"

	"github.com/Rrens/teetime/internal/api/response"
	"github.com/Rrens/teetime/internal/llm"
)

// Pinger checks connectivity to a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderLister describes the registered conversational providers
type ProviderLister interface {
	GetProvidersInfo() []llm.ProviderInfo
	DefaultProvider() string
}

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status including database connectivity
func ReadyCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database not ready")
			return
		}

		response.OK(w, map[string]string{
			"status": "ready",
		})
	}
}

// ListLLMProviders returns the registered providers
func ListLLMProviders(providers ProviderLister, activeSessions func() int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"providers":        providers.GetProvidersInfo(),
			"default_provider": providers.DefaultProvider(),
		}
		if activeSessions != nil {
			data["active_sessions"] = activeSessions()
		}
		response.OK(w, data)
	}
}
