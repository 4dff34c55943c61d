package documenthandler

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	log "github.com/sirupsen/logrus"

	"business-trips-backend/config"
	"business-trips-backend/db"
	documentstore "business-trips-backend/lib/document/store"
	employeestore "business-trips-backend/lib/employee/store"
	tripaccess "business-trips-backend/lib/trip/access"
	tripstore "business-trips-backend/lib/trip/store"
	"business-trips-backend/lib/utils/apperrors"
	"business-trips-backend/lib/utils/helpers"
	"business-trips-backend/models"
	filesapimodels "business-trips-backend/models/api/files"
	dbmodels "business-trips-backend/models/db"
	s3client "business-trips-backend/s3"
)

type Provider interface {
	Upload(ctx context.Context, userID, tripID string, fileName string, docType dbmodels.DocumentType, contentType string, fileReader io.Reader, fileSize int64) (id string, err error)
	GetFile(ctx context.Context, userID, tripID, id string) (data []byte, rec *dbmodels.TripDocument, err error)
	Delete(ctx context.Context, userID, tripID, id string) error
	List(userID, tripID string) (list []filesapimodels.FileView, err error)
	Archive(ctx context.Context, userID, tripID string) (data []byte, name string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         documentstore.NewInstance(db.DB),
		tripStore:     tripstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		s3client:      s3client.Client,
	}
}

type impl struct {
	store         documentstore.Provider
	tripStore     tripstore.Provider
	employeeStore employeestore.Provider
	s3client      *minio.Client
}

// getTrip возвращает заявку с проверкой видимости для пользователя.
func (i impl) getTrip(userID, tripID string) (*dbmodels.User, *dbmodels.BusinessTrip, error) {
	user, err := i.employeeStore.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, apperrors.New("пользователь не найден")
	}
	trip, err := i.tripStore.GetByID(tripID)
	if err != nil {
		return nil, nil, err
	}
	if trip == nil {
		return nil, nil, apperrors.New("заявка не найдена")
	}
	var subordinateIDs []string
	if user.Role == models.RoleManager {
		subordinateIDs, err = i.employeeStore.GetSubordinateIDs(user.ID)
		if err != nil {
			return nil, nil, err
		}
	}
	if !tripaccess.CanView(*user, subordinateIDs, *trip) {
		return nil, nil, apperrors.New("доступ запрещен")
	}
	return user, trip, nil
}

// Загружать и удалять документы могут владелец заявки, руководители и координаторы.
func canEditDocuments(user dbmodels.User, trip dbmodels.BusinessTrip) bool {
	switch user.Role {
	case models.RoleAdmin, models.RoleTopManager, models.RoleManager, models.RoleTravelCoordinator:
		return true
	}
	return trip.EmployeeID == user.ID
}

func (i impl) Upload(ctx context.Context, userID, tripID string, fileName string, docType dbmodels.DocumentType, contentType string, fileReader io.Reader, fileSize int64) (id string, err error) {
	logger := log.
		WithField("trip_id", tripID).
		WithField("file_name", fileName)
	user, trip, err := i.getTrip(userID, tripID)
	if err != nil {
		return "", err
	}
	if !canEditDocuments(*user, *trip) {
		return "", apperrors.New("недостаточно прав")
	}
	if !helpers.IsAllowedFileExt(fileName) {
		return "", apperrors.New("недопустимый тип файла")
	}
	if fileSize <= 0 || fileSize > config.Conf.FileStore.MaxUploadSize {
		return "", apperrors.New("превышен допустимый размер файла")
	}
	if !docType.IsValid() {
		docType = dbmodels.DocumentOther
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := fmt.Sprintf("%s/%s%s", tripID, uuid.NewString(), strings.ToLower(filepath.Ext(fileName)))
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectKey, fileReader, fileSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		logger.WithError(err).Error("ошибка загрузки файла в хранилище")
		return "", err
	}

	id, err = i.store.Create(dbmodels.TripDocument{
		TripID:      tripID,
		Name:        fileName,
		ObjectKey:   objectKey,
		Type:        docType,
		ContentType: contentType,
		Size:        fileSize,
		UploadedBy:  userID,
	})
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения документа")
		// файл в хранилище без записи в базе не нужен
		removeErr := i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, objectKey, minio.RemoveObjectOptions{})
		if removeErr != nil {
			logger.WithError(removeErr).Error("ошибка удаления файла из хранилища")
		}
		return "", err
	}
	logger.WithField("rec_id", id).Info("загружен документ по командировке")
	return id, nil
}

func (i impl) GetFile(ctx context.Context, userID, tripID, id string) (data []byte, rec *dbmodels.TripDocument, err error) {
	if _, _, err = i.getTrip(userID, tripID); err != nil {
		return nil, nil, err
	}
	rec, err = i.store.GetByID(tripID, id)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, apperrors.New("документ не найден")
	}
	data, err = i.readObject(ctx, rec.ObjectKey)
	if err != nil {
		log.
			WithField("rec_id", id).
			WithError(err).
			Error("ошибка чтения файла из хранилища")
		return nil, nil, err
	}
	return data, rec, nil
}

func (i impl) Delete(ctx context.Context, userID, tripID, id string) error {
	logger := log.
		WithField("trip_id", tripID).
		WithField("rec_id", id)
	user, trip, err := i.getTrip(userID, tripID)
	if err != nil {
		return err
	}
	if !canEditDocuments(*user, *trip) {
		return apperrors.New("недостаточно прав")
	}
	rec, err := i.store.GetByID(tripID, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.New("документ не найден")
	}
	err = i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.RemoveObjectOptions{})
	if err != nil {
		logger.WithError(err).Error("ошибка удаления файла из хранилища")
		return err
	}
	err = i.store.Delete(tripID, id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления документа")
		return err
	}
	logger.Info("удален документ по командировке")
	return nil
}

func (i impl) List(userID, tripID string) (list []filesapimodels.FileView, err error) {
	if _, _, err = i.getTrip(userID, tripID); err != nil {
		return nil, err
	}
	recList, err := i.store.ListByTrip(tripID)
	if err != nil {
		log.WithField("trip_id", tripID).WithError(err).Error("ошибка получения документов")
		return nil, err
	}
	result := make([]filesapimodels.FileView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, filesapimodels.FileConvert(rec))
	}
	return result, nil
}

// Archive собирает все документы заявки в один zip-архив.
func (i impl) Archive(ctx context.Context, userID, tripID string) (data []byte, name string, err error) {
	_, trip, err := i.getTrip(userID, tripID)
	if err != nil {
		return nil, "", err
	}
	recList, err := i.store.ListByTrip(tripID)
	if err != nil {
		return nil, "", err
	}
	if len(recList) == 0 {
		return nil, "", apperrors.New("по заявке нет документов")
	}
	buf := new(bytes.Buffer)
	zipWriter := zip.NewWriter(buf)
	for idx, rec := range recList {
		fileData, err := i.readObject(ctx, rec.ObjectKey)
		if err != nil {
			log.
				WithField("rec_id", rec.ID).
				WithError(err).
				Error("ошибка чтения файла из хранилища")
			return nil, "", err
		}
		// имена внутри архива могут повторяться, добавляем порядковый номер
		entry, err := zipWriter.Create(fmt.Sprintf("%02d_%s", idx+1, rec.Name))
		if err != nil {
			return nil, "", err
		}
		if _, err = entry.Write(fileData); err != nil {
			return nil, "", err
		}
	}
	if err = zipWriter.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("%s_documents.zip", trip.TripNumber), nil
}

func (i impl) readObject(ctx context.Context, objectKey string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()
	return io.ReadAll(object)
}
