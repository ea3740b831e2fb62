package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studydeckapp/studydeck-server/internal/service"
)

func (s *Server) registerProgressRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProgress",
		Method:      http.MethodGet,
		Path:        "/api/v1/progress",
		Summary:     "Get progress overview",
		Description: "Returns the progress stats snapshot and derived display values",
		Tags:        []string{"Progress"},
	}, s.handleGetProgress)
}

// ProgressOutput wraps the progress overview for Huma.
type ProgressOutput struct {
	Body service.Overview
}

func (s *Server) handleGetProgress(_ context.Context, _ *struct{}) (*ProgressOutput, error) {
	return &ProgressOutput{Body: s.services.Progress.Overview()}, nil
}
