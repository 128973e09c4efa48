package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, name, role string) error {
	args := m.Called(ctx, toEmail, name, role)
	return args.Error(0)
}

func (m *EmailService) SendAssignmentEmail(ctx context.Context, toEmail, reporterName, volunteerName, reportTitle string) error {
	args := m.Called(ctx, toEmail, reporterName, volunteerName, reportTitle)
	return args.Error(0)
}
