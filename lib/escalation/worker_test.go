package escalationworker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	employeestore "business-trips-backend/lib/employee/store"
	tripstore "business-trips-backend/lib/trip/store"
	baseworker "business-trips-backend/lib/utils/base-worker"
	"business-trips-backend/models"
	dbmodels "business-trips-backend/models/db"
)

type fakeTripStore struct {
	tripstore.Provider
	overdue  []dbmodels.BusinessTrip
	gotSince time.Time
	updates  map[string]map[string]interface{}
}

func (s *fakeTripStore) ListOverdueApprovals(before time.Time) ([]dbmodels.BusinessTrip, error) {
	s.gotSince = before
	return s.overdue, nil
}

func (s *fakeTripStore) Update(id string, updMap map[string]interface{}) error {
	if s.updates == nil {
		s.updates = map[string]map[string]interface{}{}
	}
	s.updates[id] = updMap
	return nil
}

type fakeEmployeeStore struct {
	employeestore.Provider
	topManager *dbmodels.User
}

func (s *fakeEmployeeStore) FirstByRole(role models.UserRole) (*dbmodels.User, error) {
	if role == models.RoleTopManager {
		return s.topManager, nil
	}
	return nil, nil
}

type fakeNotify struct {
	escalated []string
}

func (n *fakeNotify) TripSentForApproval(trip dbmodels.BusinessTrip, manager *dbmodels.User) {}
func (n *fakeNotify) TripApproved(trip dbmodels.BusinessTrip, employee *dbmodels.User)       {}
func (n *fakeNotify) TripRejected(trip dbmodels.BusinessTrip, employee *dbmodels.User, reason string) {
}
func (n *fakeNotify) TripEscalated(trip dbmodels.BusinessTrip, topManager *dbmodels.User) {
	n.escalated = append(n.escalated, trip.ID)
}

func overdueTrip(id, managerID string) dbmodels.BusinessTrip {
	requested := time.Now().UTC().Add(-48 * time.Hour)
	rec := dbmodels.BusinessTrip{
		Status:              models.TripStatusPendingApproval,
		ManagerID:           &managerID,
		ApprovalRequestDate: &requested,
	}
	rec.ID = id
	return rec
}

func newTestImpl(tripStore *fakeTripStore, topManager *dbmodels.User, notify *fakeNotify) impl {
	return impl{
		BaseImpl:      *baseworker.NewInstance("EscalationWorker", time.Second, time.Minute),
		tripStore:     tripStore,
		employeeStore: &fakeEmployeeStore{topManager: topManager},
		notify:        notify,
		pendingTTL:    24 * time.Hour,
	}
}

func TestSweep(t *testing.T) {
	topManager := &dbmodels.User{Role: models.RoleTopManager, FullName: "Главный руководитель"}
	topManager.ID = "gr-1"

	t.Run(`просроченная заявка переадресуется с новым отсчетом ожидания`, func(t *testing.T) {
		tripStore := &fakeTripStore{overdue: []dbmodels.BusinessTrip{overdueTrip("trip-1", "mgr-1")}}
		notify := &fakeNotify{}
		i := newTestImpl(tripStore, topManager, notify)

		now := time.Now().UTC()
		i.sweep(context.Background(), now)

		require.Equal(t, now.Add(-24*time.Hour), tripStore.gotSince)
		upd := tripStore.updates["trip-1"]
		require.NotNil(t, upd)
		require.Equal(t, "gr-1", upd["manager_id"])
		require.Equal(t, now, upd["approval_request_date"])
		require.Equal(t, []string{"trip-1"}, notify.escalated)
	})

	t.Run(`заявка у вышестоящего руководителя не переадресуется повторно`, func(t *testing.T) {
		tripStore := &fakeTripStore{overdue: []dbmodels.BusinessTrip{overdueTrip("trip-1", "gr-1")}}
		notify := &fakeNotify{}
		i := newTestImpl(tripStore, topManager, notify)

		now := time.Now().UTC()
		i.sweep(context.Background(), now)

		// отсчет ожидания перезапускается, чтобы заявка не попадала в выборку
		// на каждом прогоне
		upd := tripStore.updates["trip-1"]
		require.NotNil(t, upd)
		require.Equal(t, now, upd["approval_request_date"])
		require.NotContains(t, upd, "manager_id")
		require.Empty(t, notify.escalated)
	})

	t.Run(`без вышестоящего руководителя переадресация не выполняется`, func(t *testing.T) {
		tripStore := &fakeTripStore{overdue: []dbmodels.BusinessTrip{overdueTrip("trip-1", "mgr-1")}}
		notify := &fakeNotify{}
		i := newTestImpl(tripStore, nil, notify)

		i.sweep(context.Background(), time.Now().UTC())

		require.Nil(t, tripStore.updates["trip-1"])
		require.Empty(t, notify.escalated)
	})
}
