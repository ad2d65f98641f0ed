package api

import (
	"context"
	"fmt"

	"qrdine/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Company  string `json:"company"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an account and stores the returned session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return resp.User, c.adoptSession(&resp)
}

// Login authenticates and stores the returned session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/api/auth/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return resp.User, c.adoptSession(&resp)
}

func (c *Client) adoptSession(resp *AuthResponse) error {
	if err := c.session.SetToken(resp.Token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := c.session.SetUser(resp.User); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

// Me resolves the session user from the stored token and refreshes the
// persisted profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	if err := c.session.SetUser(&user); err != nil {
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}
	return &user, nil
}
