package tripaccess

import (
	"testing"

	"github.com/stretchr/testify/require"

	"business-trips-backend/models"
	dbmodels "business-trips-backend/models/db"
)

func newUser(id string, role models.UserRole) dbmodels.User {
	user := dbmodels.User{Role: role}
	user.ID = id
	return user
}

func newTrip(employeeID string) dbmodels.BusinessTrip {
	return dbmodels.BusinessTrip{EmployeeID: employeeID}
}

func TestCanView(t *testing.T) {
	t.Run(`сотрудник видит только свои заявки`, func(t *testing.T) {
		employee := newUser("emp-1", models.RoleEmployee)
		require.True(t, CanView(employee, nil, newTrip("emp-1")))
		require.False(t, CanView(employee, nil, newTrip("emp-2")))
	})

	t.Run(`руководитель видит свои и прямых подчиненных`, func(t *testing.T) {
		manager := newUser("mgr-1", models.RoleManager)
		subordinateIDs := []string{"emp-1", "emp-2"}
		require.True(t, CanView(manager, subordinateIDs, newTrip("mgr-1")))
		require.True(t, CanView(manager, subordinateIDs, newTrip("emp-1")))
		// подчиненный подчиненного не входит в зону видимости
		require.False(t, CanView(manager, subordinateIDs, newTrip("emp-3")))
	})

	t.Run(`закупки видят только заявки с потребностью в закупке`, func(t *testing.T) {
		procurement := newUser("proc-1", models.RoleProcurement)
		trip := newTrip("emp-1")
		require.False(t, CanView(procurement, nil, trip))
		trip.ProcurementNeeded = true
		require.True(t, CanView(procurement, nil, trip))
	})

	t.Run(`надзорные роли видят все`, func(t *testing.T) {
		trip := newTrip("emp-1")
		for _, role := range []models.UserRole{models.RoleAdmin, models.RoleSecurity, models.RoleAccounting,
			models.RoleTopManager, models.RoleHR, models.RoleTravelCoordinator} {
			require.True(t, CanView(newUser("user-1", role), nil, trip), string(role))
		}
	})
}
