package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/echoforge/echoforge-go/session"
	"github.com/echoforge/echoforge-go/transport"
)

// Credentials identify a user to the service.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// User is the service's account record.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// authResponse is the wire shape of register/login responses.
type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func credentialsValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the credentials locally before any request is issued.
func (c Credentials) Validate() error {
	if err := credentialsValidator().Struct(c); err != nil {
		return fmt.Errorf("auth: invalid credentials: %w", err)
	}
	return nil
}

// Client performs account operations against the service.
type Client struct {
	http    *transport.Client
	session *session.Session
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for auth logging.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates an auth client. Issued tokens are stored into sess.
func NewClient(http *transport.Client, sess *session.Session, opts ...Option) *Client {
	c := &Client{http: http, session: sess, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register creates an account and stores the issued token.
func (c *Client) Register(ctx context.Context, creds Credentials) (*User, error) {
	return c.authenticate(ctx, "/auth/register", creds)
}

// Login authenticates and stores the issued token, overwriting any
// previous one.
func (c *Client) Login(ctx context.Context, creds Credentials) (*User, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

func (c *Client) authenticate(ctx context.Context, path string, creds Credentials) (*User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   creds,
	})
	if err != nil {
		return nil, err
	}

	var result authResponse
	if err := resp.JSON(&result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, fmt.Errorf("auth: service returned no token")
	}
	if err := c.session.SetToken(result.Token); err != nil {
		return nil, fmt.Errorf("auth: store token: %w", err)
	}

	c.log.Info().Str("email", result.User.Email).Msg("authenticated")
	return &result.User, nil
}

// Verify checks the stored token against the service and returns the
// account it belongs to.
func (c *Client) Verify(ctx context.Context) (*User, error) {
	resp, err := c.http.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/auth/verify",
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		User User `json:"user"`
	}
	if err := resp.JSON(&result); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// Logout erases the stored token. Purely client-local.
func (c *Client) Logout() error {
	return c.session.Clear()
}
