package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger adapts a go-redis client to Pinger.
type RedisPinger struct {
	Client *redis.Client
}

func (p RedisPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}

type HealthHandler struct {
	DB    Pinger
	Redis Pinger
}

// Get Health
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		DB:     pingStatus(ctx, h.DB),
		Redis:  pingStatus(ctx, h.Redis),
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

func pingStatus(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "ok"
}
