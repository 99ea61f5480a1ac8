package dto

import "github.com/mdmamunfullstack/WideWorldImportersWebApi/pkg/shaping"

// RootDto is the body of GET /api/v1 for the api root media type.
type RootDto struct {
	Links []shaping.Link `json:"links"`
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks"`
	Uptime   string            `json:"uptime"`
	Database map[string]any    `json:"database,omitempty"`
}
