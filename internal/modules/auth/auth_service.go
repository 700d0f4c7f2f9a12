package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"homechef-marketplace/internal/middleware"
	"homechef-marketplace/internal/models"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, email, name, photo string) error
}

// ServiceInterface defines the contract for the auth service.
type ServiceInterface interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GoogleLoginURL(state string) string
	GoogleCallback(ctx context.Context, code string) (*models.AuthResponse, error)
	UpdateProfile(ctx context.Context, email string, req models.UpdateProfileRequest) error
}

// Service implements account creation, sign-in, and profile updates. New
// accounts always start with role "user" and status "active"; role changes
// go through the role-request workflow only.
type Service struct {
	store       UserStore
	jwtSecret   string
	googleOAuth *oauth2.Config
	httpClient  *http.Client
}

func NewService(store UserStore, jwtSecret string, googleOAuth *oauth2.Config) *Service {
	return &Service{
		store:       store,
		jwtSecret:   jwtSecret,
		googleOAuth: googleOAuth,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("service.Register: hash password: %w", err)
	}

	u := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		Photo:        req.PhotoURL,
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		PasswordHash: string(hash),
	}
	created, err := s.store.Create(ctx, u)
	if err != nil {
		if err == models.ErrEmailTaken {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("service.Register: %w", err)
	}

	return s.issueToken(created)
}

func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	u, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == models.ErrNotFound {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service.Login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, models.ErrInvalidCredentials
	}

	return s.issueToken(u)
}

// GoogleLoginURL builds the consent-screen redirect for the hosted sign-in leg.
func (s *Service) GoogleLoginURL(state string) string {
	return s.googleOAuth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// googleUserInfo mirrors the fields we read from the userinfo endpoint.
type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleCallback exchanges the authorization code, loads the Google profile,
// and signs the caller in, creating a passwordless account on first visit.
func (s *Service) GoogleCallback(ctx context.Context, code string) (*models.AuthResponse, error) {
	tok, err := s.googleOAuth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("service.GoogleCallback: exchange code: %w", err)
	}

	info, err := s.fetchGoogleUserInfo(ctx, tok.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("service.GoogleCallback: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("service.GoogleCallback: provider returned no email")
	}

	u, err := s.store.FindByEmail(ctx, info.Email)
	if err == models.ErrNotFound {
		// Passwordless account: an empty hash never matches a password login.
		u, err = s.store.Create(ctx, &models.User{
			Email:  info.Email,
			Name:   info.Name,
			Photo:  info.Picture,
			Role:   models.RoleUser,
			Status: models.StatusActive,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("service.GoogleCallback: %w", err)
	}

	return s.issueToken(u)
}

func (s *Service) fetchGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return &info, nil
}

func (s *Service) UpdateProfile(ctx context.Context, email string, req models.UpdateProfileRequest) error {
	return s.store.UpdateProfile(ctx, email, req.Name, req.PhotoURL)
}

func (s *Service) issueToken(u *models.User) (*models.AuthResponse, error) {
	token, err := middleware.GenerateToken(u, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("service.issueToken: %w", err)
	}
	return &models.AuthResponse{Token: token, User: u}, nil
}
