package tripcosthandler

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	employeestore "business-trips-backend/lib/employee/store"
	tripstore "business-trips-backend/lib/trip/store"
	"business-trips-backend/models"
	tripapimodels "business-trips-backend/models/api/trip"
	dbmodels "business-trips-backend/models/db"
)

type fakeCostStore struct {
	recs   map[string]*dbmodels.TripCost
	nextID int
}

func newFakeCostStore() *fakeCostStore {
	return &fakeCostStore{recs: map[string]*dbmodels.TripCost{}}
}

func (s *fakeCostStore) Create(rec dbmodels.TripCost) (string, error) {
	s.nextID++
	rec.ID = string(rune('a' + s.nextID))
	s.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (s *fakeCostStore) GetByID(tripID, id string) (*dbmodels.TripCost, error) {
	rec, ok := s.recs[id]
	if !ok || rec.TripID != tripID {
		return nil, nil
	}
	return rec, nil
}

func (s *fakeCostStore) Update(tripID, id string, updMap map[string]interface{}) error {
	rec, ok := s.recs[id]
	if !ok || rec.TripID != tripID {
		return errors.New("запись не найдена")
	}
	if amount, ok := updMap["amount"].(decimal.Decimal); ok {
		rec.Amount = amount
	}
	if category, ok := updMap["category"].(string); ok {
		rec.Category = category
	}
	return nil
}

func (s *fakeCostStore) Delete(tripID, id string) error {
	rec, ok := s.recs[id]
	if !ok || rec.TripID != tripID {
		return errors.New("запись не найдена")
	}
	delete(s.recs, id)
	return nil
}

func (s *fakeCostStore) ListByTrip(tripID string) ([]dbmodels.TripCost, error) {
	list := []dbmodels.TripCost{}
	for _, rec := range s.recs {
		if rec.TripID == tripID {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func (s *fakeCostStore) SumByTrip(tripID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, rec := range s.recs {
		if rec.TripID == tripID {
			sum = sum.Add(rec.Amount)
		}
	}
	return sum, nil
}

type fakeTripStore struct {
	tripstore.Provider
	rec         *dbmodels.BusinessTrip
	actualCosts decimal.Decimal
}

func (s *fakeTripStore) GetByID(id string) (*dbmodels.BusinessTrip, error) {
	if s.rec != nil && s.rec.ID == id {
		return s.rec, nil
	}
	return nil, nil
}

func (s *fakeTripStore) Update(id string, updMap map[string]interface{}) error {
	if sum, ok := updMap["actual_costs"].(decimal.Decimal); ok {
		s.actualCosts = sum
	}
	return nil
}

type fakeEmployeeStore struct {
	employeestore.Provider
	users map[string]*dbmodels.User
}

func (s *fakeEmployeeStore) GetByID(id string) (*dbmodels.User, error) {
	return s.users[id], nil
}

func (s *fakeEmployeeStore) GetSubordinateIDs(managerID string) ([]string, error) {
	return nil, nil
}

func newUser(id string, role models.UserRole) *dbmodels.User {
	u := &dbmodels.User{Role: role}
	u.ID = id
	return u
}

func newTestImpl() (impl, *fakeTripStore) {
	rec := &dbmodels.BusinessTrip{EmployeeID: "emp-1"}
	rec.ID = "trip-1"
	tripStore := &fakeTripStore{rec: rec}
	return impl{
		store:     newFakeCostStore(),
		tripStore: tripStore,
		employeeStore: &fakeEmployeeStore{users: map[string]*dbmodels.User{
			"emp-1": newUser("emp-1", models.RoleEmployee),
			"emp-2": newUser("emp-2", models.RoleEmployee),
			"bu-1":  newUser("bu-1", models.RoleAccounting),
			"adm-1": newUser("adm-1", models.RoleAdmin),
		}},
	}, tripStore
}

func TestCosts(t *testing.T) {
	t.Run(`фактические расходы пересчитываются при каждом изменении`, func(t *testing.T) {
		i, tripStore := newTestImpl()

		_, err := i.Add("emp-1", "trip-1", tripapimodels.CostData{Category: "проезд", Amount: decimal.NewFromInt(100)})
		require.NoError(t, err)
		id2, err := i.Add("emp-1", "trip-1", tripapimodels.CostData{Category: "проживание", Amount: decimal.NewFromInt(200)})
		require.NoError(t, err)
		_, err = i.Add("emp-1", "trip-1", tripapimodels.CostData{Category: "суточные", Amount: decimal.NewFromInt(300)})
		require.NoError(t, err)
		require.True(t, tripStore.actualCosts.Equal(decimal.NewFromInt(600)))

		err = i.Delete("emp-1", "trip-1", id2)
		require.NoError(t, err)
		require.True(t, tripStore.actualCosts.Equal(decimal.NewFromInt(400)))
	})

	t.Run(`изменение суммы расхода`, func(t *testing.T) {
		i, tripStore := newTestImpl()
		id, err := i.Add("emp-1", "trip-1", tripapimodels.CostData{Category: "проезд", Amount: decimal.NewFromInt(100)})
		require.NoError(t, err)

		err = i.Update("emp-1", "trip-1", id, tripapimodels.CostData{Category: "проезд", Amount: decimal.NewFromInt(150)})
		require.NoError(t, err)
		require.True(t, tripStore.actualCosts.Equal(decimal.NewFromInt(150)))
	})

	t.Run(`расход не добавить к несуществующей заявке`, func(t *testing.T) {
		i, _ := newTestImpl()
		_, err := i.Add("emp-1", "trip-2", tripapimodels.CostData{Category: "проезд", Amount: decimal.NewFromInt(100)})
		require.Error(t, err)
	})

	t.Run(`список расходов с суммой`, func(t *testing.T) {
		i, _ := newTestImpl()
		_, err := i.Add("emp-1", "trip-1", tripapimodels.CostData{Category: "проезд", Amount: decimal.NewFromInt(100)})
		require.NoError(t, err)
		_, err = i.Add("emp-1", "trip-1", tripapimodels.CostData{Category: "проживание", Amount: decimal.NewFromInt(200)})
		require.NoError(t, err)

		view, err := i.List("emp-1", "trip-1")
		require.NoError(t, err)
		require.Len(t, view.Items, 2)
		require.True(t, view.ActualCosts.Equal(decimal.NewFromInt(300)))
	})

	t.Run(`чужой сотрудник не видит и не меняет расходы`, func(t *testing.T) {
		i, tripStore := newTestImpl()
		id, err := i.Add("emp-1", "trip-1", tripapimodels.CostData{Category: "проезд", Amount: decimal.NewFromInt(100)})
		require.NoError(t, err)

		_, err = i.Add("emp-2", "trip-1", tripapimodels.CostData{Category: "проезд", Amount: decimal.NewFromInt(999)})
		require.Error(t, err)
		err = i.Update("emp-2", "trip-1", id, tripapimodels.CostData{Category: "проезд", Amount: decimal.NewFromInt(999)})
		require.Error(t, err)
		err = i.Delete("emp-2", "trip-1", id)
		require.Error(t, err)
		_, err = i.List("emp-2", "trip-1")
		require.Error(t, err)
		require.True(t, tripStore.actualCosts.Equal(decimal.NewFromInt(100)))
	})

	t.Run(`бухгалтерия видит расходы, но не меняет их`, func(t *testing.T) {
		i, _ := newTestImpl()
		_, err := i.Add("adm-1", "trip-1", tripapimodels.CostData{Category: "проезд", Amount: decimal.NewFromInt(100)})
		require.NoError(t, err)

		view, err := i.List("bu-1", "trip-1")
		require.NoError(t, err)
		require.Len(t, view.Items, 1)

		_, err = i.Add("bu-1", "trip-1", tripapimodels.CostData{Category: "проезд", Amount: decimal.NewFromInt(200)})
		require.Error(t, err)
	})
}
