package services

import (
	"context"

	"github.com/dmitrijs2005/pharmadmin/internal/client/client"
	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
)

// DashboardService feeds the overview panel. It is decorative: a failed
// fetch is logged and reported as unavailable, never as an error.
type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, bool)
}

type dashboardService struct {
	client client.Client
	logger logging.Logger
}

func NewDashboardService(c client.Client, logger logging.Logger) DashboardService {
	return &dashboardService{client: c, logger: logger}
}

func (d *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, bool) {
	st, err := d.client.Stats(ctx)
	if err != nil {
		d.logger.Warn(ctx, "stats unavailable", "error", err)
		return nil, false
	}
	return st, true
}
