package devigo

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/developer9560/devigo-go/auth"
	"github.com/developer9560/devigo-go/pkg/config"
	"github.com/developer9560/devigo-go/pkg/sessionstore"
	"github.com/developer9560/devigo-go/session"
	"github.com/developer9560/devigo-go/transport"
)

// Client is the aggregate SDK entry point: one field per resource family
// plus the auth manager. Construct it with New.
type Client struct {
	Auth      *auth.Manager
	Services  *ServicesClient
	Projects  *ProjectsClient
	Team      *TeamClient
	Inquiries *InquiriesClient
	Settings  *SettingsClient
	Uploads   *UploadsClient

	session   *session.Session
	transport *transport.Client
}

type clientOptions struct {
	store      sessionstore.Store
	httpClient *http.Client
	logger     zerolog.Logger
	hasLogger  bool
}

// Option configures the aggregate client.
type Option func(*clientOptions)

// WithSessionStore overrides the session storage backend selected by the
// configuration.
func WithSessionStore(store sessionstore.Store) Option {
	return func(o *clientOptions) {
		o.store = store
	}
}

// WithHTTPClient replaces the underlying *http.Client for all requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithLogger sets the logger passed down to the transport and auth layers.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
		o.hasLogger = true
	}
}

// New creates a fully wired SDK client from a validated configuration.
// A session persisted by a previous run (in the file or Redis backend) is
// picked up automatically; nothing forces a fresh login.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("devigo: configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("devigo: %w", err)
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	store := o.store
	if store == nil {
		var err error
		store, err = newStore(cfg)
		if err != nil {
			return nil, err
		}
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.API.Timeout}
	}
	logger := o.logger
	if !o.hasLogger {
		logger = zerolog.Nop()
	}

	sess := session.New(store)
	t := transport.New(cfg.API.BaseURL, sess,
		transport.WithHTTPClient(httpClient),
		transport.WithLogger(logger),
		transport.WithUserAgent(cfg.API.UserAgent),
	)

	cdnBase := cfg.CDN.BaseURL
	return &Client{
		Auth:      auth.NewManager(t, sess, auth.WithLogger(logger)),
		Services:  newServicesClient(t, cdnBase),
		Projects:  newProjectsClient(t, cdnBase),
		Team:      newTeamClient(t, cdnBase),
		Inquiries: newInquiriesClient(t),
		Settings:  newSettingsClient(t, cdnBase),
		Uploads:   newUploadsClient(t),
		session:   sess,
		transport: t,
	}, nil
}

// Session exposes the underlying session state for advanced integrations
// (route guards, custom persistence inspection).
func (c *Client) Session() *session.Session {
	return c.session
}

// newStore builds the session store named by the configuration.
func newStore(cfg *config.Config) (sessionstore.Store, error) {
	switch cfg.Session.Backend {
	case config.BackendMemory:
		return sessionstore.NewMemory(), nil
	case config.BackendFile:
		return sessionstore.NewFile(cfg.Session.FilePath), nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return sessionstore.NewRedis(client, cfg.Redis.Prefix), nil
	default:
		return nil, fmt.Errorf("devigo: unknown session backend %q", cfg.Session.Backend)
	}
}
