package dbmodels

// Журнал отметок геолокации по командировке.
// Записи только добавляются и никогда не изменяются.
type GeoLocationHistory struct {
	BaseModel
	TripID    string  `gorm:"type:varchar(36);index"`
	Location  string  `gorm:"type:varchar(200)"`
	Latitude  *float64
	Longitude *float64
	Accuracy  *float64
	IPAddress string `gorm:"type:varchar(45)"`
	UserAgent string `gorm:"type:varchar(255)"`
	CreatedBy string `gorm:"type:varchar(36)"`
}
