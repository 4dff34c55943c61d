package triphandler

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"business-trips-backend/models"
	tripapimodels "business-trips-backend/models/api/trip"
	dbmodels "business-trips-backend/models/db"
)

type fakeTripStore struct {
	recs    map[string]*dbmodels.BusinessTrip
	updates map[string]map[string]interface{}
}

func newFakeTripStore(recs ...*dbmodels.BusinessTrip) *fakeTripStore {
	s := &fakeTripStore{
		recs:    map[string]*dbmodels.BusinessTrip{},
		updates: map[string]map[string]interface{}{},
	}
	for _, rec := range recs {
		s.recs[rec.ID] = rec
	}
	return s
}

func (s *fakeTripStore) Create(rec dbmodels.BusinessTrip) (string, error) {
	id := "trip-" + rec.TripNumber
	rec.ID = id
	s.recs[id] = &rec
	return id, nil
}

func (s *fakeTripStore) GetByID(id string) (*dbmodels.BusinessTrip, error) {
	return s.recs[id], nil
}

func (s *fakeTripStore) Update(id string, updMap map[string]interface{}) error {
	merged := s.updates[id]
	if merged == nil {
		merged = map[string]interface{}{}
	}
	for k, v := range updMap {
		merged[k] = v
	}
	s.updates[id] = merged
	if rec, ok := s.recs[id]; ok {
		if status, ok := updMap["status"].(models.TripStatus); ok {
			rec.Status = status
		}
	}
	return nil
}

func (s *fakeTripStore) ListCount(user dbmodels.User, subordinateIDs []string, filter tripapimodels.TripFilter) (int64, error) {
	return int64(len(s.recs)), nil
}

func (s *fakeTripStore) List(user dbmodels.User, subordinateIDs []string, filter tripapimodels.TripFilter) ([]dbmodels.BusinessTrip, error) {
	list := make([]dbmodels.BusinessTrip, 0, len(s.recs))
	for _, rec := range s.recs {
		list = append(list, *rec)
	}
	return list, nil
}

func (s *fakeTripStore) ListVisible(user dbmodels.User, subordinateIDs []string) ([]dbmodels.BusinessTrip, error) {
	return s.List(user, subordinateIDs, tripapimodels.TripFilter{})
}

func (s *fakeTripStore) ListPlanned(user dbmodels.User, subordinateIDs []string) ([]dbmodels.BusinessTrip, error) {
	return s.List(user, subordinateIDs, tripapimodels.TripFilter{})
}

func (s *fakeTripStore) ListForReport(user dbmodels.User, subordinateIDs []string, filter tripapimodels.ReportFilter) ([]dbmodels.BusinessTrip, error) {
	return s.List(user, subordinateIDs, tripapimodels.TripFilter{})
}

func (s *fakeTripStore) ListOverdueApprovals(before time.Time) ([]dbmodels.BusinessTrip, error) {
	return nil, nil
}

type fakeEmployeeStore struct {
	users        map[string]*dbmodels.User
	subordinates map[string][]string
}

func (s *fakeEmployeeStore) Create(rec dbmodels.User) (string, error) { return rec.ID, nil }
func (s *fakeEmployeeStore) GetByID(id string) (*dbmodels.User, error) {
	return s.users[id], nil
}
func (s *fakeEmployeeStore) GetByUserName(userName string) (*dbmodels.User, error) {
	for _, user := range s.users {
		if user.UserName == userName {
			return user, nil
		}
	}
	return nil, nil
}
func (s *fakeEmployeeStore) Update(id string, updMap map[string]interface{}) error { return nil }
func (s *fakeEmployeeStore) Delete(id string) error                                { return nil }
func (s *fakeEmployeeStore) List() ([]dbmodels.User, error)                        { return nil, nil }
func (s *fakeEmployeeStore) ListByRoles(roles []models.UserRole) ([]dbmodels.User, error) {
	return nil, nil
}
func (s *fakeEmployeeStore) GetSubordinateIDs(managerID string) ([]string, error) {
	return s.subordinates[managerID], nil
}
func (s *fakeEmployeeStore) FirstByRole(role models.UserRole) (*dbmodels.User, error) {
	for _, user := range s.users {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, nil
}

type fakeDocumentStore struct {
	count int64
}

func (s *fakeDocumentStore) Create(rec dbmodels.TripDocument) (string, error) { return "doc-1", nil }
func (s *fakeDocumentStore) GetByID(tripID, id string) (*dbmodels.TripDocument, error) {
	return nil, nil
}
func (s *fakeDocumentStore) Delete(tripID, id string) error { return nil }
func (s *fakeDocumentStore) ListByTrip(tripID string) ([]dbmodels.TripDocument, error) {
	return nil, nil
}
func (s *fakeDocumentStore) CountByTrip(tripID string) (int64, error) { return s.count, nil }

type fakeGeoStore struct {
	recs []dbmodels.GeoLocationHistory
}

func (s *fakeGeoStore) Create(rec dbmodels.GeoLocationHistory) (string, error) {
	s.recs = append(s.recs, rec)
	return "geo-1", nil
}
func (s *fakeGeoStore) ListByTrip(tripID string) ([]dbmodels.GeoLocationHistory, error) {
	return s.recs, nil
}

type fakeNotify struct {
	sentForApproval int
	approved        int
	rejected        int
	escalated       int
}

func (n *fakeNotify) TripSentForApproval(trip dbmodels.BusinessTrip, manager *dbmodels.User) {
	n.sentForApproval++
}
func (n *fakeNotify) TripApproved(trip dbmodels.BusinessTrip, employee *dbmodels.User) {
	n.approved++
}
func (n *fakeNotify) TripRejected(trip dbmodels.BusinessTrip, employee *dbmodels.User, reason string) {
	n.rejected++
}
func (n *fakeNotify) TripEscalated(trip dbmodels.BusinessTrip, topManager *dbmodels.User) {
	n.escalated++
}

func testUser(id string, role models.UserRole) *dbmodels.User {
	user := &dbmodels.User{Role: role, FullName: "Тест " + id}
	user.ID = id
	return user
}

func testTrip(id, employeeID string, status models.TripStatus) *dbmodels.BusinessTrip {
	managerID := "mgr-1"
	rec := &dbmodels.BusinessTrip{
		TripNumber: "BT-20250101-000000-0001",
		Status:     status,
		EmployeeID: employeeID,
		ManagerID:  &managerID,
	}
	rec.ID = id
	return rec
}

func newTestImpl(tripStore *fakeTripStore, docCount int64) (impl, *fakeNotify, *fakeGeoStore) {
	employeeStore := &fakeEmployeeStore{
		users: map[string]*dbmodels.User{
			"adm-1":  testUser("adm-1", models.RoleAdmin),
			"gr-1":   testUser("gr-1", models.RoleTopManager),
			"mgr-1":  testUser("mgr-1", models.RoleManager),
			"emp-1":  testUser("emp-1", models.RoleEmployee),
			"emp-2":  testUser("emp-2", models.RoleEmployee),
			"bu-1":   testUser("bu-1", models.RoleAccounting),
			"proc-1": testUser("proc-1", models.RoleProcurement),
		},
		subordinates: map[string][]string{
			"mgr-1": {"emp-1"},
		},
	}
	employeeStore.users["emp-1"].ManagerID = strPtr("mgr-1")
	notify := &fakeNotify{}
	geoStore := &fakeGeoStore{}
	return impl{
		store:         tripStore,
		employeeStore: employeeStore,
		documentStore: &fakeDocumentStore{count: docCount},
		geoStore:      geoStore,
		notify:        notify,
	}, notify, geoStore
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	t.Run(`длительность включает день начала и день окончания`, func(t *testing.T) {
		store := newFakeTripStore()
		i, _, _ := newTestImpl(store, 0)
		id, err := i.Create("emp-1", tripapimodels.TripData{
			StartDate:   "2025-01-15",
			EndDate:     "2025-01-20",
			Destination: "Москва",
			Purpose:     "Конференция",
		})
		require.NoError(t, err)
		rec := store.recs[id]
		require.NotNil(t, rec)
		require.Equal(t, 6, rec.Duration)
		require.Equal(t, models.TripStatusPlanned, rec.Status)
		require.Equal(t, "mgr-1", rec.GetManagerID())
	})

	t.Run(`однодневная командировка`, func(t *testing.T) {
		store := newFakeTripStore()
		i, _, _ := newTestImpl(store, 0)
		id, err := i.Create("emp-1", tripapimodels.TripData{
			StartDate:   "2025-03-10",
			EndDate:     "2025-03-10",
			Destination: "Казань",
			Purpose:     "Встреча",
		})
		require.NoError(t, err)
		require.Equal(t, 1, store.recs[id].Duration)
	})

	t.Run(`сотрудник не может создать заявку для другого`, func(t *testing.T) {
		i, _, _ := newTestImpl(newFakeTripStore(), 0)
		_, err := i.Create("emp-1", tripapimodels.TripData{
			EmployeeID:  "emp-2",
			StartDate:   "2025-03-10",
			EndDate:     "2025-03-11",
			Destination: "Казань",
			Purpose:     "Встреча",
		})
		require.Error(t, err)
	})

	t.Run(`руководитель создает заявку только для подчиненного`, func(t *testing.T) {
		store := newFakeTripStore()
		i, _, _ := newTestImpl(store, 0)
		_, err := i.Create("mgr-1", tripapimodels.TripData{
			EmployeeID:  "emp-1",
			StartDate:   "2025-03-10",
			EndDate:     "2025-03-11",
			Destination: "Казань",
			Purpose:     "Встреча",
		})
		require.NoError(t, err)

		_, err = i.Create("mgr-1", tripapimodels.TripData{
			EmployeeID:  "emp-2",
			StartDate:   "2025-03-10",
			EndDate:     "2025-03-11",
			Destination: "Казань",
			Purpose:     "Встреча",
		})
		require.Error(t, err)
	})

	t.Run(`создание сразу активированной заявки`, func(t *testing.T) {
		store := newFakeTripStore()
		i, _, _ := newTestImpl(store, 0)
		id, err := i.Create("emp-1", tripapimodels.TripData{
			StartDate:   "2025-03-10",
			EndDate:     "2025-03-11",
			Destination: "Казань",
			Purpose:     "Встреча",
			MakeActive:  true,
		})
		require.NoError(t, err)
		require.Equal(t, models.TripStatusActivated, store.recs[id].Status)
		require.True(t, store.recs[id].IsActivated)
	})
}

func TestLifecycle(t *testing.T) {
	t.Run(`отправка на согласование ставит дату запроса и уведомляет руководителя`, func(t *testing.T) {
		store := newFakeTripStore(testTrip("trip-1", "emp-1", models.TripStatusActivated))
		i, notify, _ := newTestImpl(store, 0)
		err := i.SendForApproval("emp-1", "trip-1")
		require.NoError(t, err)
		upd := store.updates["trip-1"]
		require.Equal(t, models.TripStatusPendingApproval, upd["status"])
		require.NotNil(t, upd["approval_request_date"])
		require.Equal(t, 1, notify.sentForApproval)
	})

	t.Run(`согласовать может только руководитель`, func(t *testing.T) {
		store := newFakeTripStore(testTrip("trip-1", "emp-1", models.TripStatusPendingApproval))
		i, notify, _ := newTestImpl(store, 0)
		err := i.Approve("emp-1", "trip-1")
		require.Error(t, err)

		err = i.Approve("mgr-1", "trip-1")
		require.NoError(t, err)
		require.Equal(t, models.TripStatusApproved, store.updates["trip-1"]["status"])
		require.Equal(t, 1, notify.approved)
	})

	t.Run(`согласование возможно только из статуса ожидания`, func(t *testing.T) {
		store := newFakeTripStore(testTrip("trip-1", "emp-1", models.TripStatusPlanned))
		i, _, _ := newTestImpl(store, 0)
		err := i.Approve("gr-1", "trip-1")
		require.Error(t, err)
	})

	t.Run(`несогласование сохраняет причину`, func(t *testing.T) {
		store := newFakeTripStore(testTrip("trip-1", "emp-1", models.TripStatusPendingApproval))
		i, notify, _ := newTestImpl(store, 0)
		err := i.Reject("gr-1", "trip-1", tripapimodels.ReasonData{Reason: "превышен бюджет"})
		require.NoError(t, err)
		upd := store.updates["trip-1"]
		require.Equal(t, models.TripStatusRejected, upd["status"])
		require.Equal(t, "превышен бюджет", upd["cancellation_reason"])
		require.Equal(t, 1, notify.rejected)
	})

	t.Run(`отмена недоступна для закрытой заявки`, func(t *testing.T) {
		store := newFakeTripStore(testTrip("trip-1", "emp-1", models.TripStatusClosed))
		i, _, _ := newTestImpl(store, 0)
		err := i.Cancel("adm-1", "trip-1", tripapimodels.ReasonData{Reason: "не актуально"})
		require.Error(t, err)
	})

	t.Run(`посторонний сотрудник не управляет чужой заявкой`, func(t *testing.T) {
		store := newFakeTripStore(testTrip("trip-1", "emp-1", models.TripStatusPlanned))
		i, _, _ := newTestImpl(store, 0)
		err := i.Activate("emp-2", "trip-1")
		require.Error(t, err)

		err = i.Activate("emp-1", "trip-1")
		require.NoError(t, err)
		require.Equal(t, true, store.updates["trip-1"]["is_activated"])
	})
}

func TestReportChain(t *testing.T) {
	t.Run(`отчет не подготовить без расходов`, func(t *testing.T) {
		rec := testTrip("trip-1", "emp-1", models.TripStatusApproved)
		store := newFakeTripStore(rec)
		i, _, _ := newTestImpl(store, 1)
		err := i.SetReportPrepared("emp-1", "trip-1", true)
		require.Error(t, err)
	})

	t.Run(`отчет не подготовить без документов`, func(t *testing.T) {
		rec := testTrip("trip-1", "emp-1", models.TripStatusApproved)
		rec.ActualCosts = decimal.NewFromInt(1000)
		store := newFakeTripStore(rec)
		i, _, _ := newTestImpl(store, 0)
		err := i.SetReportPrepared("emp-1", "trip-1", true)
		require.Error(t, err)
	})

	t.Run(`подготовка отчета доступна только сотруднику`, func(t *testing.T) {
		rec := testTrip("trip-1", "emp-1", models.TripStatusApproved)
		rec.ActualCosts = decimal.NewFromInt(1000)
		store := newFakeTripStore(rec)
		i, _, _ := newTestImpl(store, 1)
		err := i.SetReportPrepared("mgr-1", "trip-1", true)
		require.Error(t, err)

		err = i.SetReportPrepared("emp-1", "trip-1", true)
		require.NoError(t, err)
		require.Equal(t, true, store.updates["trip-1"]["report_prepared"])
	})

	t.Run(`проверка отчета требует геолокацию и подготовленный отчет`, func(t *testing.T) {
		rec := testTrip("trip-1", "emp-1", models.TripStatusApproved)
		rec.ActualCosts = decimal.NewFromInt(1000)
		store := newFakeTripStore(rec)
		i, _, _ := newTestImpl(store, 1)
		err := i.SetReportReviewed("mgr-1", "trip-1", true)
		require.Error(t, err)

		rec.GeoLocation = "Москва, Тверская 1"
		err = i.SetReportReviewed("mgr-1", "trip-1", true)
		require.Error(t, err)

		rec.ReportPrepared = true
		err = i.SetReportReviewed("mgr-1", "trip-1", true)
		require.NoError(t, err)
		require.Equal(t, true, store.updates["trip-1"]["report_reviewed"])
	})

	t.Run(`закрытие требует проверенного отчета и роль бухгалтерии`, func(t *testing.T) {
		rec := testTrip("trip-1", "emp-1", models.TripStatusApproved)
		store := newFakeTripStore(rec)
		i, _, _ := newTestImpl(store, 1)
		err := i.Close("bu-1", "trip-1")
		require.Error(t, err)

		rec.ReportReviewed = true
		err = i.Close("mgr-1", "trip-1")
		require.Error(t, err)

		err = i.Close("bu-1", "trip-1")
		require.NoError(t, err)
		upd := store.updates["trip-1"]
		require.Equal(t, models.TripStatusClosed, upd["status"])
		require.Equal(t, true, upd["trip_closed"])
	})
}

func TestFlags(t *testing.T) {
	t.Run(`превышение согласует руководитель`, func(t *testing.T) {
		store := newFakeTripStore(testTrip("trip-1", "emp-1", models.TripStatusPendingApproval))
		i, _, _ := newTestImpl(store, 0)
		err := i.ApproveOverrun("emp-1", "trip-1")
		require.Error(t, err)

		err = i.ApproveOverrun("gr-1", "trip-1")
		require.NoError(t, err)
		require.Equal(t, true, store.updates["trip-1"]["overrun_approved"])
	})

	t.Run(`закупку отмечает отдел закупок`, func(t *testing.T) {
		store := newFakeTripStore(testTrip("trip-1", "emp-1", models.TripStatusApproved))
		i, _, _ := newTestImpl(store, 0)
		err := i.SetProcurement("mgr-1", "trip-1", tripapimodels.ProcurementData{Needed: true})
		require.Error(t, err)

		err = i.SetProcurement("proc-1", "trip-1", tripapimodels.ProcurementData{Needed: true, Details: "проектор"})
		require.NoError(t, err)
		upd := store.updates["trip-1"]
		require.Equal(t, true, upd["procurement_needed"])
		require.Equal(t, "проектор", upd["procurement_details"])
	})
}

func TestGeoLocation(t *testing.T) {
	t.Run(`геолокацию ставит только сотрудник, история пополняется`, func(t *testing.T) {
		store := newFakeTripStore(testTrip("trip-1", "emp-1", models.TripStatusApproved))
		i, _, geoStore := newTestImpl(store, 0)
		data := tripapimodels.GeoLocationData{Location: "Москва, Тверская 1"}
		err := i.SetGeoLocation("mgr-1", "trip-1", data, "10.0.0.1", "test-agent")
		require.Error(t, err)
		require.Len(t, geoStore.recs, 0)

		err = i.SetGeoLocation("emp-1", "trip-1", data, "10.0.0.1", "test-agent")
		require.NoError(t, err)
		require.Len(t, geoStore.recs, 1)
		require.Equal(t, "Москва, Тверская 1", geoStore.recs[0].Location)
		require.Equal(t, "emp-1", geoStore.recs[0].CreatedBy)
		require.Equal(t, "Москва, Тверская 1", store.updates["trip-1"]["geo_location"])
		require.Equal(t, false, store.updates["trip-1"]["geo_location_verified"])
	})

	t.Run(`геолокацию подтверждает руководитель`, func(t *testing.T) {
		store := newFakeTripStore(testTrip("trip-1", "emp-1", models.TripStatusApproved))
		store.recs["trip-1"].GeoLocation = "Москва, Тверская 1"
		i, _, _ := newTestImpl(store, 0)

		err := i.VerifyGeoLocation("emp-1", "trip-1", true)
		require.Error(t, err)

		err = i.VerifyGeoLocation("mgr-1", "trip-1", true)
		require.NoError(t, err)
		require.Equal(t, true, store.updates["trip-1"]["geo_location_verified"])
	})

	t.Run(`без отметки геолокации подтверждать нечего`, func(t *testing.T) {
		store := newFakeTripStore(testTrip("trip-1", "emp-1", models.TripStatusApproved))
		i, _, _ := newTestImpl(store, 0)
		err := i.VerifyGeoLocation("mgr-1", "trip-1", true)
		require.Error(t, err)
	})
}
