package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"atelier/api/internal/config"
	"atelier/api/internal/ids"
	"atelier/api/internal/mail"
	"atelier/api/internal/models"
	"atelier/api/internal/repository"
	"atelier/api/internal/security"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const tempPasswordLength = 10

// AccountService drives the account lifecycle: registration, login,
// admin approval/rejection, password rotation and recovery, and account
// deletion. Every state change is committed before any notification is
// attempted; a failed send is logged and never unwinds the change.
type AccountService struct {
	users  UserStore
	apps   ApplicationStore
	prods  ProductStore
	mailer mail.Sender
	cfg    *config.AppConfig
	log    zerolog.Logger
	now    func() time.Time
}

func NewAccountService(
	users UserStore,
	apps ApplicationStore,
	prods ProductStore,
	mailer mail.Sender,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		users:  users,
		apps:   apps,
		prods:  prods,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *AccountService) WithClock(now func() time.Time) *AccountService {
	if now != nil {
		s.now = now
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AccountService) validatePassword(password string) error {
	if len(password) < s.cfg.Security.MinPasswordLen {
		return fmt.Errorf("%w: minimum %d characters", ErrWeakPassword, s.cfg.Security.MinPasswordLen)
	}
	return nil
}

func (s *AccountService) notify(to string, msg mail.Message) {
	if !s.mailer.Send(to, msg.Subject, msg.Text, msg.HTML) {
		s.log.Warn().Str("to", to).Str("subject", msg.Subject).Msg("notification not delivered")
	}
}

// Register creates an unapproved creator account. It does not create a
// CreatorApplication; the "join us" form is an independent entry point
// that converges with registration only by shared email.
func (s *AccountService) Register(ctx context.Context, email, password string) (models.User, error) {
	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return models.User{}, ErrInvalidEmail
	}
	if err := s.validatePassword(password); err != nil {
		return models.User{}, err
	}

	hash, err := security.HashPassword(password, s.cfg.Security.BcryptCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleCreator,
		Approved:     false,
		FirstLogin:   true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.notify(s.cfg.Lifecycle.TeamEmail, mail.NewRegistrationAlert(user.Email, user.ID))

	return user, nil
}

type LoginResult struct {
	Token string
	User  models.User
}

// Login verifies the credential and issues a session token. Unknown
// email and wrong password produce the same error; a correct credential
// on an unapproved account is reported as such.
func (s *AccountService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}

	if !user.Approved {
		return LoginResult{}, ErrNotApproved
	}

	token, err := security.IssueSessionToken(
		s.cfg.Security.JWTSecret,
		user.ID,
		user.Email,
		string(user.Role),
		user.Approved,
		user.FirstLogin,
		s.cfg.Security.SessionTTL,
	)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, User: user}, nil
}

type ApproveResult struct {
	User        models.User
	Application models.CreatorApplication
	// CredentialsIssued is true when a temporary password was generated
	// and mailed as part of this transition.
	CredentialsIssued bool
}

// Approve handles the admin approval of the application matching the
// given email. A fresh account is created pre-approved when none exists;
// an existing unapproved account gets a new temporary credential; an
// already-approved account is left untouched apart from reconciling the
// application status. A temporary password is never rotated under an
// active account.
func (s *AccountService) Approve(ctx context.Context, email string) (ApproveResult, error) {
	email = normalizeEmail(email)

	app, err := s.apps.FindLatestByEmail(ctx, email)
	appExists := err == nil
	if err != nil && !errors.Is(err, repository.ErrApplicationNotFound) {
		return ApproveResult{}, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	userExists := err == nil
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return ApproveResult{}, err
	}

	// Nothing matches the email on either side.
	if !appExists && !userExists {
		return ApproveResult{}, repository.ErrApplicationNotFound
	}

	if app.Status == models.ApplicationStatusRejected {
		// Terminal; report current state instead of erroring.
		return ApproveResult{User: user, Application: app}, nil
	}

	switch {
	case !userExists:
		temp, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return ApproveResult{}, err
		}
		hash, err := security.HashPassword(temp, s.cfg.Security.BcryptCost)
		if err != nil {
			return ApproveResult{}, err
		}
		user = models.User{
			ID:           ids.New(),
			Email:        email,
			PasswordHash: hash,
			Role:         models.UserRoleCreator,
			Approved:     true,
			FirstLogin:   true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return ApproveResult{}, err
		}
		if err := s.markApplicationApproved(ctx, &app); err != nil {
			return ApproveResult{}, err
		}
		s.notify(email, mail.ApprovalWithCredentials(email, temp, s.creatorSpaceURL()))
		return ApproveResult{User: user, Application: app, CredentialsIssued: true}, nil

	case !user.Approved:
		temp, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return ApproveResult{}, err
		}
		hash, err := security.HashPassword(temp, s.cfg.Security.BcryptCost)
		if err != nil {
			return ApproveResult{}, err
		}
		if err := s.users.Approve(ctx, user.ID, hash); err != nil {
			return ApproveResult{}, err
		}
		user.Approved = true
		user.FirstLogin = true
		user.PasswordHash = hash
		if err := s.markApplicationApproved(ctx, &app); err != nil {
			return ApproveResult{}, err
		}
		s.notify(email, mail.ApprovalWithCredentials(email, temp, s.creatorSpaceURL()))
		return ApproveResult{User: user, Application: app, CredentialsIssued: true}, nil

	default:
		// Already approved: never rotate an active credential. Reconcile
		// a still-pending application and confirm; a fully settled state
		// means nothing to do and nothing to send.
		if app.Status == models.ApplicationStatusPending {
			if err := s.markApplicationApproved(ctx, &app); err != nil {
				return ApproveResult{}, err
			}
			s.notify(email, mail.ApprovalConfirmation(email))
		}
		return ApproveResult{User: user, Application: app}, nil
	}
}

func (s *AccountService) markApplicationApproved(ctx context.Context, app *models.CreatorApplication) error {
	if app.ID == "" || app.Status == models.ApplicationStatusApproved {
		return nil
	}
	if err := s.apps.UpdateStatus(ctx, app.ID, models.ApplicationStatusApproved); err != nil {
		return err
	}
	app.Status = models.ApplicationStatusApproved
	return nil
}

type RejectResult struct {
	Application models.CreatorApplication
	// User is set when an account shares the application email.
	User *models.User
}

// Reject moves the application to rejected and revokes approval on the
// linked account, if one exists. Re-rejecting a previously approved
// account is supported; the applicant is always notified.
func (s *AccountService) Reject(ctx context.Context, email, reason string) (RejectResult, error) {
	email = normalizeEmail(email)

	app, err := s.apps.FindLatestByEmail(ctx, email)
	appExists := err == nil
	if err != nil && !errors.Is(err, repository.ErrApplicationNotFound) {
		return RejectResult{}, err
	}

	if appExists && app.Status != models.ApplicationStatusRejected {
		if err := s.apps.UpdateStatus(ctx, app.ID, models.ApplicationStatusRejected); err != nil {
			return RejectResult{}, err
		}
		app.Status = models.ApplicationStatusRejected
	}

	result := RejectResult{Application: app}

	user, err := s.users.FindByEmail(ctx, email)
	if !appExists && err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return RejectResult{}, repository.ErrApplicationNotFound
		}
		return RejectResult{}, err
	}
	if err == nil {
		if err := s.users.Reject(ctx, user.ID); err != nil {
			return RejectResult{}, err
		}
		user.Approved = false
		user.FirstLogin = false
		result.User = &user
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return RejectResult{}, err
	}

	s.notify(email, mail.Rejection(email, reason))

	return result, nil
}

// ChangePassword is the self-service rotation. Outside the first-login
// ceremony the caller must prove knowledge of the current password; a
// holder of the temporary credential is only expected to know what was
// mailed, so that check is skipped while firstLogin is set.
func (s *AccountService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if !user.FirstLogin {
		if !security.VerifyPassword(currentPassword, user.PasswordHash) {
			return models.User{}, ErrWrongPassword
		}
	}

	if err := s.validatePassword(newPassword); err != nil {
		return models.User{}, err
	}

	hash, err := security.HashPassword(newPassword, s.cfg.Security.BcryptCost)
	if err != nil {
		return models.User{}, err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash, false); err != nil {
		return models.User{}, err
	}

	user.PasswordHash = hash
	user.FirstLogin = false
	return user, nil
}

// ForgotPassword issues a reset token and mails the link. It reveals
// nothing about whether the email is registered: the caller gets the
// same outcome either way.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, hash, err := security.GenerateResetToken()
	if err != nil {
		return err
	}

	expires := s.now().Add(s.cfg.Security.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, hash, expires); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", strings.TrimSuffix(s.cfg.Lifecycle.PublicBaseURL, "/"), token)
	s.notify(email, mail.ResetLink(email, resetURL))

	return nil
}

// ResetPassword consumes a reset token. The token is matched by its
// hash and must not be expired; success replaces the credential, ends
// any first-login ceremony and clears the token so it cannot be reused.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) (models.User, error) {
	if err := s.validatePassword(newPassword); err != nil {
		return models.User{}, err
	}

	user, err := s.users.FindByResetHash(ctx, security.HashResetToken(token), s.now())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrInvalidOrExpiredToken
		}
		return models.User{}, err
	}

	hash, err := security.HashPassword(newPassword, s.cfg.Security.BcryptCost)
	if err != nil {
		return models.User{}, err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash, false); err != nil {
		return models.User{}, err
	}

	user.PasswordHash = hash
	user.FirstLogin = false
	user.ResetHash = nil
	user.ResetExpires = nil

	s.notify(user.Email, mail.ResetConfirmation(user.Email))

	return user, nil
}

// DeleteAccount removes a user and every application sharing its email.
// Product listings follow only when the cascade policy is enabled. An
// admin cannot remove the identity issuing the request.
func (s *AccountService) DeleteAccount(ctx context.Context, callerID, targetID string) error {
	if callerID == targetID {
		return ErrSelfDeletion
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if _, err := s.apps.DeleteByEmail(ctx, user.Email); err != nil {
		return err
	}
	if s.cfg.Lifecycle.DeleteProducts {
		if _, err := s.prods.DeleteByCreatorEmail(ctx, user.Email); err != nil {
			return err
		}
	}

	return s.users.Delete(ctx, targetID)
}

func (s *AccountService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *AccountService) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AccountService) creatorSpaceURL() string {
	return strings.TrimSuffix(s.cfg.Lifecycle.PublicBaseURL, "/") + "/espaco-criador"
}
