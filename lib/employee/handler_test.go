package employeehandler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"business-trips-backend/models"
	employeeapimodels "business-trips-backend/models/api/employee"
	dbmodels "business-trips-backend/models/db"
)

type fakeStore struct {
	users   map[string]*dbmodels.User
	updates map[string]map[string]interface{}
}

func newFakeStore(users ...*dbmodels.User) *fakeStore {
	s := &fakeStore{
		users:   map[string]*dbmodels.User{},
		updates: map[string]map[string]interface{}{},
	}
	for _, user := range users {
		s.users[user.ID] = user
	}
	return s
}

func (s *fakeStore) Create(rec dbmodels.User) (string, error) {
	id := "user-" + rec.UserName
	rec.ID = id
	s.users[id] = &rec
	return id, nil
}

func (s *fakeStore) GetByID(id string) (*dbmodels.User, error) {
	return s.users[id], nil
}

func (s *fakeStore) GetByUserName(userName string) (*dbmodels.User, error) {
	for _, user := range s.users {
		if user.UserName == userName {
			return user, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) Update(id string, updMap map[string]interface{}) error {
	s.updates[id] = updMap
	return nil
}

func (s *fakeStore) Delete(id string) error {
	delete(s.users, id)
	return nil
}

func (s *fakeStore) List() ([]dbmodels.User, error) { return nil, nil }

func (s *fakeStore) ListByRoles(roles []models.UserRole) ([]dbmodels.User, error) {
	return nil, nil
}

func (s *fakeStore) GetSubordinateIDs(managerID string) ([]string, error) {
	ids := []string{}
	for _, user := range s.users {
		if user.ManagerID != nil && *user.ManagerID == managerID {
			ids = append(ids, user.ID)
		}
	}
	return ids, nil
}

func (s *fakeStore) FirstByRole(role models.UserRole) (*dbmodels.User, error) {
	for _, user := range s.users {
		if user.Role == role {
			return user, nil
		}
	}
	return nil, nil
}

func user(id, userName string, role models.UserRole, managerID *string) *dbmodels.User {
	rec := &dbmodels.User{
		UserName:  userName,
		FullName:  "Тест " + userName,
		Role:      role,
		ManagerID: managerID,
	}
	rec.ID = id
	return rec
}

func strPtr(s string) *string { return &s }

func TestEmployee(t *testing.T) {
	t.Run(`имя пользователя должно быть уникальным`, func(t *testing.T) {
		store := newFakeStore(user("u1", "admin", models.RoleAdmin, nil))
		i := impl{store: store}
		_, err := i.Create(employeeapimodels.EmployeeCreateData{
			EmployeeData: employeeapimodels.EmployeeData{
				UserName: "admin",
				Password: "secret",
				FullName: "Дубль",
				Role:     models.RoleEmployee,
			},
		})
		require.Error(t, err)
	})

	t.Run(`пароль хранится в виде хеша`, func(t *testing.T) {
		store := newFakeStore()
		i := impl{store: store}
		id, err := i.Create(employeeapimodels.EmployeeCreateData{
			EmployeeData: employeeapimodels.EmployeeData{
				UserName: "ivanov",
				Password: "secret",
				FullName: "Иванов Иван",
				Role:     models.RoleEmployee,
			},
		})
		require.NoError(t, err)
		require.NotEqual(t, "secret", store.users[id].Password)
		require.Len(t, store.users[id].Password, 32)
	})

	t.Run(`руководителем может быть только роль с подчиненными`, func(t *testing.T) {
		store := newFakeStore(user("u1", "employee", models.RoleEmployee, nil))
		i := impl{store: store}
		_, err := i.Create(employeeapimodels.EmployeeCreateData{
			EmployeeData: employeeapimodels.EmployeeData{
				UserName:  "petrov",
				Password:  "secret",
				FullName:  "Петров Петр",
				Role:      models.RoleEmployee,
				ManagerID: "u1",
			},
		})
		require.Error(t, err)
	})

	t.Run(`назначение руководителя не должно образовывать цикл`, func(t *testing.T) {
		// цепочка u3 -> u2 -> u1, попытка назначить u3 руководителем u1
		store := newFakeStore(
			user("u1", "gr", models.RoleTopManager, nil),
			user("u2", "mgr", models.RoleManager, strPtr("u1")),
			user("u3", "mgr2", models.RoleManager, strPtr("u2")),
		)
		i := impl{store: store}
		err := i.Update("u1", employeeapimodels.EmployeeData{
			UserName:  "gr",
			FullName:  "Главный руководитель",
			Role:      models.RoleTopManager,
			ManagerID: "u3",
		})
		require.Error(t, err)
	})

	t.Run(`сотрудник не может быть руководителем самого себя`, func(t *testing.T) {
		store := newFakeStore(user("u1", "mgr", models.RoleManager, nil))
		i := impl{store: store}
		err := i.Update("u1", employeeapimodels.EmployeeData{
			UserName:  "mgr",
			FullName:  "Руководитель",
			Role:      models.RoleManager,
			ManagerID: "u1",
		})
		require.Error(t, err)
	})

	t.Run(`нельзя удалить самого себя`, func(t *testing.T) {
		store := newFakeStore(user("u1", "admin", models.RoleAdmin, nil))
		i := impl{store: store}
		err := i.Delete("u1", "u1")
		require.Error(t, err)

		err = i.Delete("u1", "u2")
		require.NoError(t, err)
	})
}
