package service

import (
	"github.com/estdesignco/walkthrough-app/internal/config"
	"github.com/estdesignco/walkthrough-app/internal/repository"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// Services bundles all services for dependency injection.
type Services struct {
	Project *ProjectService
	Room    *RoomService
	Item    *ItemService
	Export  *ExportService
}

// NewServices creates all services.
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	// MinIO backs item image uploads; the service degrades to link-only
	// items when no endpoint is configured.
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			minioClient = nil
		}
	}

	itemSvc := NewItemService(repos.Item, repos.Room, rdb, minioClient, cfg.MinIO.Bucket)
	return &Services{
		Project: NewProjectService(repos.Project, repos.Room),
		Room:    NewRoomService(repos.Room, repos.Project, repos.Item, rdb),
		Item:    itemSvc,
		Export:  NewExportService(repos.Project, repos.Room, repos.Item),
	}
}
