package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTripStatus(t *testing.T) {
	t.Run(`допустимые переходы`, func(t *testing.T) {
		require.True(t, TripStatusPlanned.IsAllowChange(TripStatusActivated))
		require.True(t, TripStatusPlanned.IsAllowChange(TripStatusPendingApproval))
		require.True(t, TripStatusPlanned.IsAllowChange(TripStatusCancelled))
		require.True(t, TripStatusActivated.IsAllowChange(TripStatusPlanned))
		require.True(t, TripStatusActivated.IsAllowChange(TripStatusPendingApproval))
		require.True(t, TripStatusPendingApproval.IsAllowChange(TripStatusApproved))
		require.True(t, TripStatusPendingApproval.IsAllowChange(TripStatusRejected))
		require.True(t, TripStatusRejected.IsAllowChange(TripStatusPendingApproval))
		require.True(t, TripStatusApproved.IsAllowChange(TripStatusClosed))
	})

	t.Run(`недопустимые переходы`, func(t *testing.T) {
		require.False(t, TripStatusPlanned.IsAllowChange(TripStatusApproved))
		require.False(t, TripStatusPlanned.IsAllowChange(TripStatusClosed))
		require.False(t, TripStatusActivated.IsAllowChange(TripStatusApproved))
		require.False(t, TripStatusPendingApproval.IsAllowChange(TripStatusClosed))
		require.False(t, TripStatusRejected.IsAllowChange(TripStatusApproved))
		require.False(t, TripStatusApproved.IsAllowChange(TripStatusPlanned))
	})

	t.Run(`терминальные статусы`, func(t *testing.T) {
		for _, to := range []TripStatus{TripStatusPlanned, TripStatusActivated, TripStatusPendingApproval,
			TripStatusApproved, TripStatusRejected, TripStatusCancelled, TripStatusClosed} {
			require.False(t, TripStatusCancelled.IsAllowChange(to))
			require.False(t, TripStatusClosed.IsAllowChange(to))
		}
		require.True(t, TripStatusCancelled.IsTerminal())
		require.True(t, TripStatusClosed.IsTerminal())
		require.False(t, TripStatusPlanned.IsTerminal())
	})

	t.Run(`неизвестный статус`, func(t *testing.T) {
		unknown := TripStatus("Неизвестная")
		require.False(t, unknown.IsAllowChange(TripStatusPlanned))
		require.Error(t, unknown.Validate())
		require.NoError(t, TripStatusPlanned.Validate())
	})
}
