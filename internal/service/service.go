package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"siaga-bencana/internal/config"
	"siaga-bencana/internal/repository"
	"siaga-bencana/internal/service/auth"
	"siaga-bencana/internal/service/disaster"
	"siaga-bencana/internal/service/email"
	"siaga-bencana/internal/service/media"
	"siaga-bencana/internal/service/resource"
	"siaga-bencana/internal/service/user"
)

type Services struct {
	Auth     auth.Service
	User     user.Service
	Disaster disaster.Service
	Resource resource.Service
	Media    media.Service
	Email    email.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	disasterService := disaster.NewService(repos.Disaster, repos.History, repos.User, redis, emailService)
	resourceService := resource.NewService(repos.Resource)
	mediaService := media.NewService(minioClient, cfg)
	userService := user.NewService(repos.User, repos.Session)

	return &Services{
		Auth:     authService,
		User:     userService,
		Disaster: disasterService,
		Resource: resourceService,
		Media:    mediaService,
		Email:    emailService,
	}
}
