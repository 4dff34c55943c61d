package documenthandler

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	documentstore "business-trips-backend/lib/document/store"
	employeestore "business-trips-backend/lib/employee/store"
	tripstore "business-trips-backend/lib/trip/store"
	"business-trips-backend/models"
	dbmodels "business-trips-backend/models/db"
)

type fakeDocumentStore struct {
	documentstore.Provider
	recs []dbmodels.TripDocument
}

func (s *fakeDocumentStore) ListByTrip(tripID string) ([]dbmodels.TripDocument, error) {
	list := []dbmodels.TripDocument{}
	for _, rec := range s.recs {
		if rec.TripID == tripID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (s *fakeDocumentStore) GetByID(tripID, id string) (*dbmodels.TripDocument, error) {
	for _, rec := range s.recs {
		if rec.TripID == tripID && rec.ID == id {
			return &rec, nil
		}
	}
	return nil, nil
}

type fakeTripStore struct {
	tripstore.Provider
	rec *dbmodels.BusinessTrip
}

func (s *fakeTripStore) GetByID(id string) (*dbmodels.BusinessTrip, error) {
	if s.rec != nil && s.rec.ID == id {
		return s.rec, nil
	}
	return nil, nil
}

type fakeEmployeeStore struct {
	employeestore.Provider
	users map[string]*dbmodels.User
}

func (s *fakeEmployeeStore) GetByID(id string) (*dbmodels.User, error) {
	return s.users[id], nil
}

func (s *fakeEmployeeStore) GetSubordinateIDs(managerID string) ([]string, error) {
	if managerID == "mgr-1" {
		return []string{"emp-1"}, nil
	}
	return nil, nil
}

func newUser(id string, role models.UserRole) *dbmodels.User {
	u := &dbmodels.User{Role: role}
	u.ID = id
	return u
}

func newTestImpl() impl {
	rec := &dbmodels.BusinessTrip{EmployeeID: "emp-1"}
	rec.ID = "trip-1"
	doc := dbmodels.TripDocument{TripID: "trip-1", Name: "билет.pdf"}
	doc.ID = "doc-1"
	return impl{
		store:     &fakeDocumentStore{recs: []dbmodels.TripDocument{doc}},
		tripStore: &fakeTripStore{rec: rec},
		employeeStore: &fakeEmployeeStore{users: map[string]*dbmodels.User{
			"emp-1": newUser("emp-1", models.RoleEmployee),
			"emp-2": newUser("emp-2", models.RoleEmployee),
			"mgr-1": newUser("mgr-1", models.RoleManager),
			"bu-1":  newUser("bu-1", models.RoleAccounting),
			"tk-1":  newUser("tk-1", models.RoleTravelCoordinator),
		}},
	}
}

func TestDocumentAccess(t *testing.T) {
	ctx := context.Background()

	t.Run(`владелец и руководитель видят документы заявки`, func(t *testing.T) {
		i := newTestImpl()
		list, err := i.List("emp-1", "trip-1")
		require.NoError(t, err)
		require.Len(t, list, 1)

		list, err = i.List("mgr-1", "trip-1")
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run(`чужой сотрудник не видит документы заявки`, func(t *testing.T) {
		i := newTestImpl()
		_, err := i.List("emp-2", "trip-1")
		require.Error(t, err)
		_, _, err = i.GetFile(ctx, "emp-2", "trip-1", "doc-1")
		require.Error(t, err)
		_, _, err = i.Archive(ctx, "emp-2", "trip-1")
		require.Error(t, err)
	})

	t.Run(`чужой сотрудник не загружает и не удаляет документы`, func(t *testing.T) {
		i := newTestImpl()
		_, err := i.Upload(ctx, "emp-2", "trip-1", "отчет.pdf", dbmodels.DocumentReport,
			"application/pdf", strings.NewReader("x"), 1)
		require.Error(t, err)
		err = i.Delete(ctx, "emp-2", "trip-1", "doc-1")
		require.Error(t, err)
	})

	t.Run(`бухгалтерия видит документы, но не загружает их`, func(t *testing.T) {
		i := newTestImpl()
		list, err := i.List("bu-1", "trip-1")
		require.NoError(t, err)
		require.Len(t, list, 1)

		_, err = i.Upload(ctx, "bu-1", "trip-1", "отчет.pdf", dbmodels.DocumentReport,
			"application/pdf", strings.NewReader("x"), 1)
		require.Error(t, err)
	})

	t.Run(`координатору недопустимое расширение не пройдет`, func(t *testing.T) {
		i := newTestImpl()
		_, err := i.Upload(ctx, "tk-1", "trip-1", "script.exe", dbmodels.DocumentOther,
			"application/octet-stream", strings.NewReader("x"), 1)
		require.Error(t, err)
	})
}
