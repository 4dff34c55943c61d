package dbmodels

import (
	"business-trips-backend/models"
)

type User struct {
	BaseModel
	UserName     string          `gorm:"type:varchar(80);uniqueIndex"`
	Password     string          `gorm:"type:varchar(128)"`
	FullName     string          `gorm:"type:varchar(150)"`
	Role         models.UserRole `gorm:"type:varchar(10)"`
	ManagerID    *string         `gorm:"type:varchar(36);index"`
	Manager      *User           `gorm:"foreignKey:ManagerID"`
	Department   string          `gorm:"type:varchar(100)"`
	PassportData string          `gorm:"type:text"`
	Email        string          `gorm:"type:varchar(100)"`
}

func (u User) GetManagerID() string {
	if u.ManagerID == nil {
		return ""
	}
	return *u.ManagerID
}
