package authhandler

import (
	log "github.com/sirupsen/logrus"

	"business-trips-backend/db"
	employeestore "business-trips-backend/lib/employee/store"
	"business-trips-backend/lib/utils/apperrors"
	authhelpers "business-trips-backend/lib/utils/auth-helpers"
	authutils "business-trips-backend/lib/utils/auth-utils"
	authapimodels "business-trips-backend/models/api/auth"
)

type Provider interface {
	Login(data authapimodels.LoginRequest) (resp authapimodels.JWTResponse, err error)
	Refresh(data authapimodels.RefreshRequest) (resp authapimodels.JWTResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		employeeStore: employeestore.NewInstance(db.DB),
	}
}

type impl struct {
	employeeStore employeestore.Provider
}

func (i impl) Login(data authapimodels.LoginRequest) (resp authapimodels.JWTResponse, err error) {
	logger := log.WithField("user_name", data.UserName)
	user, err := i.employeeStore.GetByUserName(data.UserName)
	if err != nil {
		logger.WithError(err).Error("ошибка получения пользователя")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || user.Password != authhelpers.GetMD5Hash(data.Password) {
		return authapimodels.JWTResponse{}, apperrors.New("неверное имя пользователя или пароль")
	}
	token, err := authutils.GetToken(user.ID, user.FullName, user.Role)
	if err != nil {
		logger.WithError(err).Error("ошибка формирования токена")
		return authapimodels.JWTResponse{}, err
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.FullName)
	if err != nil {
		logger.WithError(err).Error("ошибка формирования refresh токена")
		return authapimodels.JWTResponse{}, err
	}
	logger.Info("пользователь вошел в систему")
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

func (i impl) Refresh(data authapimodels.RefreshRequest) (resp authapimodels.JWTResponse, err error) {
	userID, err := authutils.ParseRefreshToken(data.RefreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, apperrors.New("некорректный refresh token")
	}
	user, err := i.employeeStore.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		return authapimodels.JWTResponse{}, apperrors.New("пользователь не найден")
	}
	token, err := authutils.GetToken(user.ID, user.FullName, user.Role)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token: token,
	}, nil
}
