package dashboard

import "context"

// DashboardService serves the admin overview.
type DashboardService interface {
	Overview(ctx context.Context) (OverviewResponse, error)
}
