package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/pharmadmin/internal/client/models"
	"github.com/dmitrijs2005/pharmadmin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Stats(t *testing.T) {
	fc := &fakeClient{StatsRet: &models.DashboardStats{TotalProducts: 12}}
	st, ok := NewDashboardService(fc, logging.Nop()).Stats(context.Background())
	require.True(t, ok)
	assert.Equal(t, 12, st.TotalProducts)
}

func TestDashboard_FailureDegrades(t *testing.T) {
	var buf bytes.Buffer
	fc := &fakeClient{StatsErr: errors.New("connection refused")}

	st, ok := NewDashboardService(fc, logging.NewText(&buf, "info")).Stats(context.Background())
	assert.False(t, ok)
	assert.Nil(t, st)
	assert.Contains(t, buf.String(), "stats unavailable")
	assert.Contains(t, buf.String(), "level=WARN")
}
