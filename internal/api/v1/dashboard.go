package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/kyulab/labms/internal/service"
)

type DashboardOutput struct {
	Body *service.DashboardSummary
}

// RegisterDashboardRoutes wires the cached landing-page counters.
func RegisterDashboardRoutes(api huma.API, dashboard *service.DashboardService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/dashboard",
		Summary:     "Get researcher, project and task counters",
		Tags:        []string{"Dashboard"},
	}, func(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
		summary, err := dashboard.Summary(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load dashboard", err)
		}

		return &DashboardOutput{Body: summary}, nil
	})
}
