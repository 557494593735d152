package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/pkg/utils"
	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	BCRYPT_COST          = 10
	MIN_FULLNAME_LENGTH  = 3
	MIN_PASSWORD_LENGTH  = 6
	USERNAME_SUFFIX_SIZE = 5
	USERNAME_ATTEMPTS    = 5
)

var (
	avatarCollections = []string{"notionists-neutral", "adventurer-neutral", "fun-emoji"}
	avatarSeeds       = []string{"Garfield", "Tinkerbell", "Annie", "Loki", "Cleo", "Angel", "Bob", "Mia", "Coco", "Gracie", "Bear", "Bella", "Abby", "Harley", "Cali", "Leo", "Luna", "Jack", "Felix", "Kiki"}
)

type authService struct {
	logger *zap.Logger
	repo   *repository.Repository
	cfg    config.AuthConfig
	google GoogleVerifier
}

func newAuthService(logger *zap.Logger, repo *repository.Repository, cfg config.AuthConfig, google GoogleVerifier) Auth {
	return &authService{
		logger: logger,
		repo:   repo,
		cfg:    cfg,
		google: google,
	}
}

func validateSignUp(input dto.SignUpRequest) error {
	if input.Fullname == "" {
		return ErrFullnameRequired
	}
	if utf8.RuneCountInString(input.Fullname) < MIN_FULLNAME_LENGTH {
		return ErrFullnameTooShort
	}
	if input.Email == "" {
		return ErrEmailRequired
	}
	if !validEmail(input.Email) {
		return ErrEmailInvalid
	}
	return validatePassword(input.Password)
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if utf8.RuneCountInString(password) < MIN_PASSWORD_LENGTH {
		return ErrPasswordTooShort
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func (s *authService) SignUp(ctx context.Context, input dto.SignUpRequest) (*dto.AuthResponse, error) {
	input.Fullname = strings.TrimSpace(input.Fullname)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateSignUp(input); err != nil {
		return nil, err
	}

	if _, err := s.repo.Store.User.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Sugar().Errorf("failed to find user by email: %s", err.Error())
		return nil, ErrInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), BCRYPT_COST)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password: %s", err.Error())
		return nil, ErrInternal
	}

	username, err := s.uniqueUsername(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	user := model.User{
		ID: uuid.New(),
		PersonalInfo: model.PersonalInfo{
			Fullname:   input.Fullname,
			Email:      input.Email,
			Password:   string(hash),
			Username:   username,
			ProfileImg: defaultProfileImg(),
		},
		JoinedAt: time.Now().UTC(),
	}

	if err := s.create(ctx, user); err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

func (s *authService) SignIn(ctx context.Context, input dto.SignInRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.repo.Store.User.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmailNotFound
		}

		s.logger.Sugar().Errorf("failed to find user by email: %s", err.Error())
		return nil, ErrInternal
	}

	if user.GoogleAuth {
		return nil, ErrGoogleAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PersonalInfo.Password), []byte(input.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	return s.authResponse(*user)
}

func (s *authService) GoogleAuth(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	if s.google == nil {
		s.logger.Error("google sign-in requested but no verifier is configured")
		return nil, ErrGoogleAuthFailed
	}

	profile, err := s.google.Verify(ctx, idToken)
	if err != nil {
		s.logger.Sugar().Errorf("failed to verify google token: %s", err.Error())
		return nil, ErrGoogleAuthFailed
	}

	email := strings.ToLower(profile.Email)
	user, err := s.repo.Store.User.FindByEmail(ctx, email)
	if err == nil {
		if !user.GoogleAuth {
			return nil, ErrNotGoogleAccount
		}
		return s.authResponse(*user)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Sugar().Errorf("failed to find user by email: %s", err.Error())
		return nil, ErrInternal
	}

	username, err := s.uniqueUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	newUser := model.User{
		ID: uuid.New(),
		PersonalInfo: model.PersonalInfo{
			Fullname:   profile.Name,
			Email:      email,
			Username:   username,
			ProfileImg: strings.Replace(profile.Picture, "s96-c", "s384-c", 1),
		},
		GoogleAuth: true,
		JoinedAt:   time.Now().UTC(),
	}

	if err := s.create(ctx, newUser); err != nil {
		return nil, err
	}

	return s.authResponse(newUser)
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, input dto.ChangePasswordRequest) error {
	if err := validatePassword(input.NewPassword); err != nil {
		return err
	}

	user, err := s.repo.Store.User.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s): %s", userID.String(), err.Error())
		return ErrInternal
	}

	if user.GoogleAuth {
		return ErrGooglePasswordChange
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PersonalInfo.Password), []byte(input.CurrentPassword)); err != nil {
		return ErrIncorrectCurrentPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), BCRYPT_COST)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password: %s", err.Error())
		return ErrInternal
	}

	if err := s.repo.Store.User.UpdatePassword(ctx, userID, string(hash)); err != nil {
		s.logger.Sugar().Errorf("failed to update user(%s) password: %s", userID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *authService) VerifyAccessToken(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrNoAccessToken
	}

	claims, err := utils.DecodeJWT(token, s.cfg.AccessSecret)
	if err != nil {
		return uuid.Nil, ErrInvalidAccessToken
	}

	return claims.UserID, nil
}

// create maps a lost race on the unique indexes back to a client error.
func (s *authService) create(ctx context.Context, user model.User) error {
	err := s.repo.Store.User.Create(ctx, user)
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrDuplicate) {
		if _, findErr := s.repo.Store.User.FindByEmail(ctx, user.PersonalInfo.Email); findErr == nil {
			return ErrEmailExists
		}
		return ErrUsernameTaken
	}

	s.logger.Sugar().Errorf("failed to create user: %s", err.Error())
	return ErrInternal
}

// uniqueUsername derives a username from the email's local part and appends
// a short random suffix until it is free.
func (s *authService) uniqueUsername(ctx context.Context, email string) (string, error) {
	base := email
	if at := strings.Index(email, "@"); at >= 0 {
		base = email[:at]
	}

	username := base
	for i := 0; i < USERNAME_ATTEMPTS; i++ {
		exists, err := s.repo.Store.User.ExistsByUsername(ctx, username)
		if err != nil {
			s.logger.Sugar().Errorf("failed to check username(%s): %s", username, err.Error())
			return "", ErrInternal
		}
		if !exists {
			return username, nil
		}

		username = base + shortuuid.New()[:USERNAME_SUFFIX_SIZE]
	}

	return "", ErrUsernameTaken
}

func (s *authService) authResponse(user model.User) (*dto.AuthResponse, error) {
	token, err := utils.GenerateJWT(user.ID, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate access token for user(%s): %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	return &dto.AuthResponse{
		AccessToken: token,
		ProfileImg:  user.PersonalInfo.ProfileImg,
		Username:    user.PersonalInfo.Username,
		Fullname:    user.PersonalInfo.Fullname,
	}, nil
}

func defaultProfileImg() string {
	collection := avatarCollections[rand.Intn(len(avatarCollections))]
	seed := avatarSeeds[rand.Intn(len(avatarSeeds))]
	return fmt.Sprintf("https://api.dicebear.com/6.x/%s/svg?seed=%s", collection, seed)
}
