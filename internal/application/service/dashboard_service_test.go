package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/expense-companion/internal/infrastructure/persistence/seed"
)

func TestDashboardService_Summary(t *testing.T) {
	svc := NewDashboardService(seededStore().Reports, 3, &mockLogger{}, fixedClock)

	summary, err := svc.Summary(context.Background(), seed.DemoUser)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.MyReports.Total)
	assert.Equal(t, 1, summary.MyReports.Pending)
	assert.InDelta(t, 1245.50, summary.MyReports.TotalAmount, 1e-9)
	require.Len(t, summary.MyReports.Recent, 1)
	assert.Equal(t, "1", summary.MyReports.Recent[0].ID)

	assert.Equal(t, 1, summary.MyApprovals.Total)
	assert.InDelta(t, 890.0, summary.MyApprovals.TotalAmount, 1e-9)
	assert.Zero(t, summary.MyApprovals.ThisMonth, "seed reports predate the clock")
}

func TestSessionService_Login(t *testing.T) {
	svc := NewSessionService(&mockLogger{})

	session, err := svc.Login(context.Background(), " demo@company.com ", "demo123")
	require.NoError(t, err)
	assert.True(t, session.Authenticated)
	assert.Equal(t, "demo@company.com", session.Email)

	session, err = svc.Login(context.Background(), "anyone@example.com", "x")
	require.NoError(t, err, "any non-empty pair is accepted")
	assert.True(t, session.Authenticated)

	_, err = svc.Login(context.Background(), "demo@company.com", "")
	assert.True(t, IsValidation(err))
}
