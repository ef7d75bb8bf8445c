package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"articlegen-be/internal/config"
	"articlegen-be/internal/dto"
	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/specification"
	"articlegen-be/internal/repository/unitofwork"
	"articlegen-be/pkg/apperror"
)

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.AuthResponse, error)
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	googleConf *oauth2.Config
	jwtSecret  string
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, cfg *config.Config) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.Auth.GoogleClientID,
		ClientSecret: cfg.Auth.GoogleClientSecret,
		RedirectURL:  cfg.Auth.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory: uowFactory,
		googleConf: conf,
		jwtSecret:  cfg.Auth.JWTSecret,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", apperror.Newf(apperror.CodeValidationFailed, "unsupported provider %q", provider)
	}

	b := make([]byte, 16)
	rand.Read(b)
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.AuthResponse, error) {
	if provider != "google" {
		return nil, apperror.Newf(apperror.CodeValidationFailed, "unsupported provider %q", provider)
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.UpstreamFailure("google code exchange", err)
	}

	userInfoURL := "https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken
	resp, err := http.Get(userInfoURL)
	if err != nil {
		return nil, apperror.UpstreamFailure("google userinfo", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.UpstreamFailure("google userinfo read", err)
	}

	var googleUser struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(content, &googleUser); err != nil {
		return nil, apperror.UpstreamFailure("google userinfo decode", err)
	}
	if googleUser.Email == "" {
		return nil, apperror.Unauthenticated("google account has no email")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: googleUser.Email})
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &entity.User{
			Id:        uuid.New(),
			Email:     googleUser.Email,
			FullName:  googleUser.Name,
			Provider:  entity.AuthProviderGoogle,
			CreatedAt: time.Now(),
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, fmt.Errorf("creating oauth user: %w", err)
		}
	}

	return buildAuthResponse(user, s.jwtSecret)
}
