package service

import (
	"context"
	"errors"

	"github.com/pkravets/huddle-auth/internal/auth/domain"
	"github.com/pkravets/huddle-auth/internal/auth/repository"
	"github.com/pkravets/huddle-auth/internal/auth/service/dto"
	"github.com/pkravets/huddle-auth/internal/auth/service/mapper"
	commoncrypto "github.com/pkravets/huddle-auth/internal/common/crypto"
	"github.com/pkravets/huddle-auth/internal/common/logger"
)

type AuthService struct {
	repo   repository.UserRepository
	hasher commoncrypto.PasswordHasher
	issuer *TokenIssuer
	log    *logger.Logger
}

func NewAuthService(
	repo repository.UserRepository,
	hasher commoncrypto.PasswordHasher,
	issuer *TokenIssuer,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
		log:    log,
	}
}

type RegisterInput struct {
	Username string `validate:"required,notblank"`
	Email    string `validate:"required,notblank"`
	Password string `validate:"required,notblank"`
	Handle   string `validate:"required,notblank"`
}

type LoginInput struct {
	Identifier string `validate:"required,notblank"`
	Password   string `validate:"required,notblank"`
}

type LoginResult struct {
	Token string
	User  dto.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := validateInput(input); err != nil {
		incrementRegistrations("validation_error")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		incrementRegistrations("hash_error")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return err
	}

	user := domain.User{
		Username:     input.Username,
		Email:        input.Email,
		Handle:       input.Handle,
		PasswordHash: hash,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// Unique-constraint violations surface here too; the store's answer
		// is reported as-is without a conflict classification.
		incrementRegistrations("store_error")
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return newStoreError(err)
	}

	incrementRegistrations("success")
	s.log.WithFields(ctx, logger.Fields{
		"username": created.Username,
		"user_id":  created.ID,
		"action":   "register_success",
	}).Info("register success")

	return nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"identifier": input.Identifier,
		"action":     "login_attempt",
	}).Info("login attempt")

	if err := validateInput(input); err != nil {
		incrementLogins("validation_error")
		s.log.WithFields(ctx, logger.Fields{
			"identifier": input.Identifier,
			"action":     "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		return LoginResult{}, err
	}

	user, err := s.repo.FindByIdentifier(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			incrementLogins("invalid_credentials")
			s.log.WithFields(ctx, logger.Fields{
				"identifier": input.Identifier,
				"action":     "login_user_not_found",
			}).Warn("login failed: not found")
			return LoginResult{}, ErrInvalidCredentials
		}
		incrementLogins("store_error")
		s.log.WithFields(ctx, logger.Fields{
			"identifier": input.Identifier,
			"action":     "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, newStoreError(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		incrementLogins("invalid_credentials")
		s.log.WithFields(ctx, logger.Fields{
			"identifier": input.Identifier,
			"action":     "login_invalid_password",
		}).Warn("login failed: invalid password")
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.issuer.IssueToken(user)
	if err != nil {
		incrementLogins("token_error")
		s.log.WithFields(ctx, logger.Fields{
			"identifier": input.Identifier,
			"user_id":    user.ID,
			"action":     "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return LoginResult{}, ErrInternal.WithCause(err)
	}

	incrementLogins("success")
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  user.ID,
		"action":   "login_success",
	}).Info("login success")

	return LoginResult{
		Token: token,
		User:  mapper.UserToDTO(user),
	}, nil
}
