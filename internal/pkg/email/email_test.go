package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenithhr/hrms-backend-go/internal/config"
)

func TestEmailService_ResolvesSettingsOnEverySend(t *testing.T) {
	calls := 0
	svc, err := NewEmailServiceWithResolver(func() config.SMTPConfig {
		calls++
		// No host: the send is a logged no-op, but the resolver must still
		// have been consulted for this send.
		return config.SMTPConfig{}
	})
	require.NoError(t, err)

	require.NoError(t, svc.SendLeaveRequestSubmitted(
		"approver@example.com", "Morgan Manager", "Alice Example",
		"Annual Leave", "2024-03-04", "2024-03-06", "3",
	))
	require.NoError(t, svc.SendLeaveDecision(
		"alice@example.com", "Alice Example", "Annual Leave",
		"2024-03-04", "2024-03-06", "approved", nil,
	))

	assert.Equal(t, 2, calls)
}

func TestEmailService_StaticSettingsStillSkipWhenUnconfigured(t *testing.T) {
	svc, err := NewEmailService(config.SMTPConfig{})
	require.NoError(t, err)

	assert.NoError(t, svc.SendLeaveDecision(
		"alice@example.com", "Alice Example", "Casual Leave",
		"2024-05-01", "2024-05-01", "rejected", nil,
	))
}
