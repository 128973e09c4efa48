package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v3"

	"siaga-bencana/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name, role string) error
	SendAssignmentEmail(ctx context.Context, toEmail, reporterName, volunteerName, reportTitle string) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	templatePath := "internal/service/templates/email"
	return &service{
		client:       client,
		config:       cfg,
		templatePath: templatePath,
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Siaga Bencana <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, name, role string) error {
	data := struct {
		Title string
		Name  string
		Role  string
		Link  string
	}{
		Title: "Welcome to Siaga Bencana",
		Name:  name,
		Role:  role,
		Link:  fmt.Sprintf("http://%s/login", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Welcome to Siaga Bencana", "welcome.html", data)
}

func (s *service) SendAssignmentEmail(ctx context.Context, toEmail, reporterName, volunteerName, reportTitle string) error {
	data := struct {
		Title         string
		Name          string
		VolunteerName string
		ReportTitle   string
		Link          string
	}{
		Title:         "A volunteer accepted your report",
		Name:          reporterName,
		VolunteerName: volunteerName,
		ReportTitle:   reportTitle,
		Link:          fmt.Sprintf("http://%s/user/dashboard", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("%s accepted your report", volunteerName), "assignment.html", data)
}
