package dbmodels

type DocumentType string

const (
	DocumentTicket  DocumentType = "ticket"
	DocumentHotel   DocumentType = "hotel"
	DocumentReport  DocumentType = "report"
	DocumentReceipt DocumentType = "receipt"
	DocumentOther   DocumentType = "other"
)

func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentTicket, DocumentHotel, DocumentReport, DocumentReceipt, DocumentOther:
		return true
	}
	return false
}

type TripDocument struct {
	BaseModel
	TripID      string        `gorm:"type:varchar(36);index"`
	Name        string        `gorm:"type:varchar(255)"`
	ObjectKey   string        `gorm:"type:varchar(255)"`
	Type        DocumentType  `gorm:"type:varchar(20)"`
	ContentType string        `gorm:"type:varchar(100)"`
	Size        int64
	UploadedBy  string `gorm:"type:varchar(36)"`
}
