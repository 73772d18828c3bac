package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"atelier/api/internal/config"
	"atelier/api/internal/ids"
	"atelier/api/internal/mail"
	"atelier/api/internal/models"
)

// ApplicationService is the registry for "join us" submissions.
type ApplicationService struct {
	apps   ApplicationStore
	files  FileStore
	mailer mail.Sender
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewApplicationService(
	apps ApplicationStore,
	files FileStore,
	mailer mail.Sender,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:   apps,
		files:  files,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
	}
}

type SubmitApplicationInput struct {
	Name    string
	Phone   string
	Email   string
	Message string
	// Image is the optional raw photo upload; only its stored reference
	// ends up on the application.
	Image []byte
}

func (s *ApplicationService) Submit(ctx context.Context, input SubmitApplicationInput) (models.CreatorApplication, error) {
	email := normalizeEmail(input.Email)
	if !emailPattern.MatchString(email) {
		return models.CreatorApplication{}, ErrInvalidEmail
	}
	if input.Name == "" || input.Phone == "" || input.Message == "" {
		return models.CreatorApplication{}, fmt.Errorf("%w: name, phone and message are required", ErrInvalidInput)
	}

	imageURL := ""
	if len(input.Image) > 0 {
		url, err := s.files.SaveImage(ctx, input.Image)
		if err != nil {
			return models.CreatorApplication{}, fmt.Errorf("store application photo: %w", err)
		}
		imageURL = url
	}

	app := models.CreatorApplication{
		ID:       ids.New(),
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    email,
		Message:  input.Message,
		ImageURL: imageURL,
		Status:   models.ApplicationStatusPending,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return models.CreatorApplication{}, err
	}

	msg := mail.NewApplicationAlert(app.Name, app.Email, app.Phone, app.Message, app.ImageURL)
	if !s.mailer.Send(s.cfg.Lifecycle.TeamEmail, msg.Subject, msg.Text, msg.HTML) {
		s.log.Warn().Str("application_id", app.ID).Msg("application alert not delivered")
	}

	return app, nil
}

func (s *ApplicationService) List(ctx context.Context) ([]models.CreatorApplication, error) {
	return s.apps.List(ctx)
}
