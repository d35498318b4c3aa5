package storage

import (
	"bytes"
	"context"
	"fmt"

	"mindhub-service/internal/app/config"
	"mindhub-service/internal/app/contracts"
	"mindhub-service/internal/app/models"
	"mindhub-service/internal/pkg/constvars"
	"mindhub-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioStorage struct {
	client     *minio.Client
	bucketName string
	log        *zap.Logger
}

func NewMinioStorage(client *minio.Client, driverConfig *config.DriverConfig, log *zap.Logger) contracts.SnapshotStorage {
	return &minioStorage{
		client:     client,
		bucketName: driverConfig.Minio.BucketName,
		log:        log,
	}
}

func (s *minioStorage) StoreAssessmentSnapshot(ctx context.Context, assessment *models.Assessment) (string, error) {
	body, err := json.Marshal(assessment)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := fmt.Sprintf(constvars.AssessmentSnapshotKeyFormat, assessment.InstrumentID, assessment.ID)
	reader := bytes.NewReader(body)
	_, err = s.client.PutObject(ctx, s.bucketName, objectName, reader, int64(len(body)), minio.PutObjectOptions{
		ContentType: constvars.MIMEApplicationJSON,
	})
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, s.bucketName)
	}

	s.log.Info("assessment snapshot archived",
		zap.String(constvars.LoggingAssessmentIDKey, assessment.ID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return objectName, nil
}
