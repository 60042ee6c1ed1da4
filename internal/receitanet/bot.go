package receitanet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexconsult/receitanet-bx/internal/files"
	"github.com/nexconsult/receitanet-bx/internal/models"
	"github.com/nexconsult/receitanet-bx/internal/retry"
	"github.com/nexconsult/receitanet-bx/internal/utils"
	"github.com/sirupsen/logrus"
)

// ErrInvalidRange is returned when the start date is after the end date.
var ErrInvalidRange = errors.New("start date is after end date")

// BotSettings configures the retry envelope around each run.
type BotSettings struct {
	DocsDir     string
	Attempts    int
	AttemptWait time.Duration
}

// Bot executes download requests end to end.
type Bot struct {
	client   *Client
	sped     *Sped
	settings BotSettings
	log      *logrus.Logger
}

// NewBot creates a bot.
func NewBot(client *Client, sped *Sped, settings BotSettings, logger *logrus.Logger) *Bot {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if settings.Attempts < 1 {
		settings.Attempts = 1
	}
	return &Bot{client: client, sped: sped, settings: settings, log: logger}
}

// Validate normalizes req and checks it can be run.
func Validate(req *models.DownloadRequest) (Profile, error) {
	if err := req.Normalize(); err != nil {
		return Profile{}, err
	}
	ok, err := utils.StartNotAfterEnd(req.StartDate, req.EndDate)
	if err != nil {
		return Profile{}, err
	}
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, req.StartDate, req.EndDate)
	}
	return ProfileFor(req.System)
}

// Run executes req. Each attempt starts from an empty download folder and a
// fresh login, and always closes the application.
func (b *Bot) Run(ctx context.Context, req models.DownloadRequest) (*models.RunReport, error) {
	profile, err := Validate(&req)
	if err != nil {
		return nil, err
	}

	log := b.log.WithFields(logrus.Fields{
		"cnpj":   utils.FormatCNPJ(req.CNPJ),
		"system": req.System,
		"start":  req.StartDate,
		"end":    req.EndDate,
	})

	var report *models.RunReport
	started := time.Now()
	err = retry.Timed(log, func() error {
		var err error
		report, err = retry.Attempts(ctx, log, b.settings.Attempts, b.settings.AttemptWait,
			func(ctx context.Context, attempt int) (*models.RunReport, error) {
				return b.runOnce(ctx, log, profile, req)
			})
		return err
	})
	if report != nil {
		report.Elapsed = time.Since(started).Round(time.Second).String()
	}
	return report, err
}

func (b *Bot) runOnce(ctx context.Context, log *logrus.Entry, p Profile, req models.DownloadRequest) (*models.RunReport, error) {
	if err := files.ClearDir(b.settings.DocsDir); err != nil {
		return nil, retry.Permanent(err)
	}
	defer func() {
		b.client.closeQuietly(ctx)
		if err := files.ClearDir(b.settings.DocsDir); err != nil {
			log.WithError(err).Warn("Failed to clear the download folder")
		}
	}()

	if err := b.client.Login(ctx, req.CNPJ); err != nil {
		return nil, err
	}
	return b.sped.Download(ctx, p, req)
}
