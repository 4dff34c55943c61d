package employeehandler

import (
	log "github.com/sirupsen/logrus"

	"business-trips-backend/db"
	employeestore "business-trips-backend/lib/employee/store"
	"business-trips-backend/lib/utils/apperrors"
	authhelpers "business-trips-backend/lib/utils/auth-helpers"
	"business-trips-backend/models"
	employeeapimodels "business-trips-backend/models/api/employee"
	dbmodels "business-trips-backend/models/db"
)

type Provider interface {
	Create(data employeeapimodels.EmployeeCreateData) (id string, err error)
	Update(id string, data employeeapimodels.EmployeeData) error
	Delete(id, requesterID string) error
	GetByID(id string) (view employeeapimodels.EmployeeView, err error)
	List() (list []employeeapimodels.EmployeeView, err error)
	ListManagers() (list []employeeapimodels.EmployeeView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: employeestore.NewInstance(db.DB),
	}
}

type impl struct {
	store employeestore.Provider
}

func (i impl) Create(data employeeapimodels.EmployeeCreateData) (id string, err error) {
	logger := log.WithField("user_name", data.UserName)
	existing, err := i.store.GetByUserName(data.UserName)
	if err != nil {
		logger.WithError(err).Error("ошибка проверки имени пользователя")
		return "", err
	}
	if existing != nil {
		return "", apperrors.New("пользователь с таким именем уже существует")
	}
	rec := dbmodels.User{
		UserName:     data.UserName,
		Password:     authhelpers.GetMD5Hash(data.Password),
		FullName:     data.FullName,
		Role:         data.Role,
		Department:   data.Department,
		PassportData: data.PassportData,
		Email:        data.Email,
	}
	if data.ManagerID != "" {
		if err = i.checkManager("", data.ManagerID); err != nil {
			return "", err
		}
		rec.ManagerID = &data.ManagerID
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания сотрудника")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("Создан сотрудник")
	return id, nil
}

func (i impl) Update(id string, data employeeapimodels.EmployeeData) error {
	logger := log.WithField("rec_id", id)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if data.UserName != rec.UserName {
		existing, err := i.store.GetByUserName(data.UserName)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.New("пользователь с таким именем уже существует")
		}
	}
	updMap := map[string]interface{}{
		"user_name":     data.UserName,
		"full_name":     data.FullName,
		"role":          data.Role,
		"department":    data.Department,
		"passport_data": data.PassportData,
		"email":         data.Email,
	}
	if data.Password != "" {
		updMap["password"] = authhelpers.GetMD5Hash(data.Password)
	}
	if data.ManagerID != "" {
		if err = i.checkManager(id, data.ManagerID); err != nil {
			return err
		}
		updMap["manager_id"] = data.ManagerID
	} else {
		updMap["manager_id"] = nil
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления сотрудника")
		return err
	}
	logger.Info("обновлен сотрудник")
	return nil
}

func (i impl) Delete(id, requesterID string) error {
	logger := log.WithField("rec_id", id)
	if id == requesterID {
		return apperrors.New("нельзя удалить самого себя")
	}
	_, err := i.getRec(id)
	if err != nil {
		return err
	}
	err = i.store.Delete(id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления сотрудника")
		return err
	}
	logger.Info("удален сотрудник")
	return nil
}

func (i impl) GetByID(id string) (employeeapimodels.EmployeeView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return employeeapimodels.EmployeeView{}, err
	}
	return employeeapimodels.EmployeeConvert(*rec), nil
}

func (i impl) List() (list []employeeapimodels.EmployeeView, err error) {
	recList, err := i.store.List()
	if err != nil {
		log.WithError(err).Error("ошибка получения списка сотрудников")
		return nil, err
	}
	result := make([]employeeapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, employeeapimodels.EmployeeConvert(rec))
	}
	return result, nil
}

func (i impl) ListManagers() (list []employeeapimodels.EmployeeView, err error) {
	recList, err := i.store.ListByRoles([]models.UserRole{models.RoleManager, models.RoleTopManager})
	if err != nil {
		log.WithError(err).Error("ошибка получения списка руководителей")
		return nil, err
	}
	result := make([]employeeapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, employeeapimodels.EmployeeConvert(rec))
	}
	return result, nil
}

// checkManager проверяет, что назначаемый руководитель существует, имеет
// подходящую роль и что назначение не образует цикл в дереве подчинения.
func (i impl) checkManager(employeeID, managerID string) error {
	if employeeID != "" && employeeID == managerID {
		return apperrors.New("сотрудник не может быть руководителем самого себя")
	}
	manager, err := i.store.GetByID(managerID)
	if err != nil {
		return err
	}
	if manager == nil {
		return apperrors.New("руководитель не найден")
	}
	if !manager.Role.CanHaveSubordinates() {
		return apperrors.Errorf("роль %v не может иметь подчиненных", manager.Role.ToHuman())
	}
	if employeeID == "" {
		return nil
	}
	// поднимаемся по цепочке руководителей от назначаемого
	current := manager
	for current != nil && current.ManagerID != nil {
		parentID := *current.ManagerID
		if parentID == employeeID {
			return apperrors.New("назначение образует цикл в дереве подчинения")
		}
		current, err = i.store.GetByID(parentID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (i impl) getRec(id string) (*dbmodels.User, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("rec_id", id).WithError(err).Error("ошибка получения сотрудника")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.New("сотрудник не найден")
	}
	return rec, nil
}
