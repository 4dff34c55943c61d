package authapimodels

import "business-trips-backend/lib/utils/apperrors"

type LoginRequest struct {
	UserName string `json:"user_name"` // имя пользователя
	Password string `json:"password"`  // пароль
}

func (r LoginRequest) Validate() error {
	if r.UserName == "" {
		return apperrors.New("не указано имя пользователя")
	}
	if r.Password == "" {
		return apperrors.New("не указан пароль")
	}
	return nil
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshRequest) Validate() error {
	if r.RefreshToken == "" {
		return apperrors.New("не указан refresh token")
	}
	return nil
}

type JWTResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
