package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/repository"
	"github.com/cramr/cramr-backend/pkg/bcrypt"
	"github.com/cramr/cramr-backend/pkg/utils"
)

const codeLength = 6

type AuthService struct {
	users    UserRepository
	codes    CodeStore
	mailer   Mailer
	tokens   TokenIssuer
	otpTTL   time.Duration
	resetTTL time.Duration
	logger   *zap.Logger
}

func NewAuthService(users UserRepository, codes CodeStore, mailer Mailer, tokens TokenIssuer, otpTTL, resetTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		codes:    codes,
		mailer:   mailer,
		tokens:   tokens,
		otpTTL:   otpTTL,
		resetTTL: resetTTL,
		logger:   logger,
	}
}

// Signup reports a taken e-mail and a taken username together.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	username := utils.NormalizeIdentifier(req.Username)
	email := utils.NormalizeIdentifier(req.Email)

	var conflicts []string
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		conflicts = append(conflicts, "email already exists")
	}
	exists, err = s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		conflicts = append(conflicts, "username already exists")
	}
	if len(conflicts) > 0 {
		return nil, &SignupConflictError{Errors: conflicts}
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		FullName: req.FullName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &SignupConflictError{Errors: []string{"email or username already exists"}}
		}
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	go s.sendMail("welcome", user.Email, func() error {
		return s.mailer.SendWelcomeEmail(user.Email, displayName(user))
	})

	s.logger.Info("user signed up", zap.Uint("user_id", user.ID))
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login accepts an e-mail address or a username. Accounts with two-factor
// login get a code by e-mail instead of a token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByIdentifier(ctx, utils.NormalizeIdentifier(req.Identifier))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareDummy(req.Password)
			return nil, newError(ErrInvalidCredentials, "invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, newError(ErrInvalidCredentials, "invalid credentials")
	}

	if user.TwoFactorEnabled {
		if err := s.issueCode(ctx, repository.PurposeOTP, user); err != nil {
			return nil, err
		}
		return &models.AuthResponse{OTPRequired: true}, nil
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// SendOTP does not reveal whether the address belongs to an account.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, utils.NormalizeIdentifier(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.issueCode(ctx, repository.PurposeOTP, user)
}

// VerifyOTP consumes the code, marks the e-mail verified and returns a token,
// which also completes a two-factor login.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*models.AuthResponse, error) {
	email = utils.NormalizeIdentifier(email)
	if err := s.verifyCode(ctx, repository.PurposeOTP, email, code); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fromRepo(err, "user")
	}
	if !user.EmailVerified {
		if err := s.users.Update(ctx, user.ID, map[string]interface{}{"email_verified": true}); err != nil {
			return nil, err
		}
		user.EmailVerified = true
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// ForgotPassword succeeds silently for unknown addresses.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, utils.NormalizeIdentifier(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.issueCode(ctx, repository.PurposeReset, user)
}

func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	email := utils.NormalizeIdentifier(req.Email)
	if err := s.verifyCode(ctx, repository.PurposeReset, email, req.Code); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fromRepo(err, "user")
	}

	hashedPassword, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hashedPassword)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req models.ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fromRepo(err, "user")
	}

	if err := bcrypt.ComparePassword(user.Password, req.CurrentPassword); err != nil {
		return newError(ErrInvalidCredentials, "current password is incorrect")
	}

	hashedPassword, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hashedPassword)
}

func (s *AuthService) issueCode(ctx context.Context, purpose string, user *models.User) error {
	code, err := utils.GenerateNumericCode(codeLength)
	if err != nil {
		return err
	}

	ttl := s.otpTTL
	if purpose == repository.PurposeReset {
		ttl = s.resetTTL
	}
	if err := s.codes.Save(ctx, purpose, user.Email, code, ttl); err != nil {
		return fmt.Errorf("failed to store %s code: %w", purpose, err)
	}

	to, name := user.Email, displayName(user)
	go s.sendMail(purpose, to, func() error {
		if purpose == repository.PurposeReset {
			return s.mailer.SendPasswordResetEmail(to, name, code, ttl)
		}
		return s.mailer.SendOTPEmail(to, name, code, ttl)
	})
	return nil
}

func (s *AuthService) verifyCode(ctx context.Context, purpose, email, code string) error {
	err := s.codes.Verify(ctx, purpose, email, code)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrTooManyAttempts):
		return newError(ErrInvalidCode, "too many attempts, request a new code")
	case errors.Is(err, repository.ErrCodeInvalid), errors.Is(err, repository.ErrCodeExpired):
		return newError(ErrInvalidCode, "invalid or expired code")
	}
	return err
}

func (s *AuthService) sendMail(kind, to string, send func() error) {
	if err := send(); err != nil {
		s.logger.Warn("failed to send email", zap.String("kind", kind), zap.String("to", to), zap.Error(err))
	}
}

func displayName(u *models.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.HashPassword(password)
	if errors.Is(err, bcrypt.ErrTooLong) {
		return "", newError(ErrValidation, "password must be at most %d bytes", bcrypt.MaxPasswordBytes)
	}
	return hash, err
}
