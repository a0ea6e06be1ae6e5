package domain

import (
	"context"
)

type HubUseCase interface {
	Handle(ctx context.Context, client Client) error
	ActiveSessions() int64
}

type HealthCheckResponse struct {
	Status   string
	Sessions int64
}
