package filesapimodels

import (
	"time"

	dbmodels "business-trips-backend/models/db"
)

type FileView struct {
	ID          string    `json:"id"`
	TripID      string    `json:"trip_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func FileConvert(rec dbmodels.TripDocument) FileView {
	return FileView{
		ID:          rec.ID,
		TripID:      rec.TripID,
		Name:        rec.Name,
		Type:        string(rec.Type),
		ContentType: rec.ContentType,
		Size:        rec.Size,
		UploadedBy:  rec.UploadedBy,
		CreatedAt:   rec.CreatedAt,
	}
}
