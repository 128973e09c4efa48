package handler

import "siaga-bencana/internal/service"

type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Disaster *DisasterHandler
	Resource *ResourceHandler
}

func NewHandlers(services *service.Services) *Handlers {
	validate := NewValidator()

	return &Handlers{
		Auth:     NewAuthHandler(services.Auth, validate),
		User:     NewUserHandler(services.User, validate),
		Disaster: NewDisasterHandler(services.Disaster, services.Media, validate),
		Resource: NewResourceHandler(services.Resource, validate),
	}
}
