// Package receitanet drives the Receitanet BX desktop client: login, the
// search form of each SPED system, request submission and file download.
package receitanet

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexconsult/receitanet-bx/internal/config"
	"github.com/nexconsult/receitanet-bx/internal/desktop"
	"github.com/nexconsult/receitanet-bx/internal/popup"
	"github.com/sirupsen/logrus"
)

// Match thresholds used across the flows.
const (
	confLoose     = 0.7
	confDefault   = 0.8
	confFiscalBox = 0.87
	confStrict    = 0.9
	confExact     = 0.97
)

var (
	ErrLoginFailed     = errors.New("login with the A1 certificate failed")
	ErrAppNotRunning   = errors.New("receitanet bx is not running")
	ErrOptionNotFound  = errors.New("option not found on screen")
	ErrFieldNotFound   = errors.New("form field not found on screen")
	ErrDownloadTimeout = errors.New("download did not finish in time")
)

// Lists resolves an image list name to its member ids.
type Lists interface {
	List(name string) []string
}

// Settings configures the client.
type Settings struct {
	AppName       string
	AppShortcut   string
	ProcessName   string
	LoginAttempts int
	Timeouts      config.TimeoutConfig
}

// SettingsFromConfig builds Settings from the loaded configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		AppName:       cfg.Bot.AppName,
		AppShortcut:   cfg.Bot.AppShortcut,
		ProcessName:   cfg.Bot.ProcessName,
		LoginAttempts: cfg.Bot.LoginAttempts,
		Timeouts:      *cfg.Timeouts,
	}
}

// Deps are the collaborators of a Client.
type Deps struct {
	Screen   desktop.Screen
	Window   desktop.Window
	Lists    Lists
	Resolver *popup.Resolver
	Catalog  popup.Catalog
	Logger   *logrus.Logger
}

// Client automates one Receitanet BX window.
type Client struct {
	screen   desktop.Screen
	window   desktop.Window
	lists    Lists
	resolver *popup.Resolver
	catalog  popup.Catalog
	settings Settings
	t        config.TimeoutConfig
	log      *logrus.Entry
}

// NewClient creates a client. A nil catalog means popup.SubmissionCatalog.
func NewClient(d Deps, s Settings) *Client {
	if d.Catalog == nil {
		d.Catalog = popup.SubmissionCatalog()
	}
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	if s.LoginAttempts < 1 {
		s.LoginAttempts = 1
	}
	return &Client{
		screen:   d.Screen,
		window:   d.Window,
		lists:    d.Lists,
		resolver: d.Resolver,
		catalog:  d.Catalog,
		settings: s,
		t:        s.Timeouts,
		log:      d.Logger.WithField("component", "receitanet"),
	}
}

// Open launches the application and focuses its window.
func (c *Client) Open(ctx context.Context) error {
	c.log.Info("Opening Receitanet BX")
	if err := c.window.Open(ctx, c.settings.AppShortcut); err != nil {
		return fmt.Errorf("opening application: %w", err)
	}
	if err := c.window.Focus(ctx, c.settings.AppName); err != nil {
		return fmt.Errorf("opening application: %w", err)
	}
	return nil
}

// Close kills the application process.
func (c *Client) Close(ctx context.Context) error {
	c.log.Info("Closing application")
	if err := c.window.Kill(ctx, c.settings.ProcessName); err != nil {
		return fmt.Errorf("closing application: %w", err)
	}
	return nil
}

func (c *Client) click(ctx context.Context, id string, confidence float64) error {
	return desktop.FindClick(ctx, c.screen, id, confidence, c.t.ClickAttempts, c.t.PollInterval)
}

func (c *Client) clickAny(ctx context.Context, list string, confidence float64, attempts int) error {
	return desktop.FindClickAny(ctx, c.screen, c.lists.List(list), confidence, attempts, c.t.PollInterval)
}

// visible probes id once.
func (c *Client) visible(ctx context.Context, id string, confidence float64) (desktop.Point, bool, error) {
	return c.screen.Locate(ctx, id, confidence)
}

func (c *Client) closeQuietly(ctx context.Context) {
	if err := c.Close(context.WithoutCancel(ctx)); err != nil {
		c.log.WithError(err).Warn("Failed to close application")
	}
}
