// Package bootstrap wires the desktop bot from configuration. It is the only
// library package that imports robotgo.
package bootstrap

import (
	"fmt"

	"github.com/nexconsult/receitanet-bx/internal/config"
	"github.com/nexconsult/receitanet-bx/internal/desktop"
	"github.com/nexconsult/receitanet-bx/internal/desktop/robot"
	"github.com/nexconsult/receitanet-bx/internal/files"
	"github.com/nexconsult/receitanet-bx/internal/popup"
	"github.com/nexconsult/receitanet-bx/internal/receitanet"
	"github.com/sirupsen/logrus"
)

// NewBot loads the screen images and builds a bot driving the real desktop.
func NewBot(cfg *config.Config, logger *logrus.Logger) (*receitanet.Bot, error) {
	templates := desktop.NewTemplates(cfg.Bot.DisplayScale)
	if err := receitanet.LoadImages(templates, cfg.Bot.ImageDir); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"images": templates.Len(),
		"dir":    cfg.Bot.ImageDir,
	}).Info("Screen images loaded")

	screen := robot.NewScreen(templates, desktop.NewMatcher(uint32(cfg.Bot.MatchTolerance)))
	resolver := popup.NewResolver(screen, desktop.ClickConfirm{Screen: screen}, logger,
		popup.WithPollInterval(cfg.Popup.PollInterval),
		popup.WithTimeout(cfg.Popup.ResolveTimeout),
	)

	catalog := popup.SubmissionCatalog().WithConfidence(cfg.Popup.Confidence)
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("popup catalog: %w", err)
	}
	// Os diálogos abrem centralizados na janela maximizada.
	templates.SetArea(desktop.CenteredArea(cfg.Popup.SearchArea), catalog.ProbeIDs()...)

	client := receitanet.NewClient(receitanet.Deps{
		Screen:   screen,
		Window:   robot.Window{},
		Lists:    templates,
		Resolver: resolver,
		Catalog:  catalog,
		Logger:   logger,
	}, receitanet.SettingsFromConfig(cfg))

	organizer := files.Organizer{
		DocsDir:   cfg.Bot.DocsDir,
		OutputDir: cfg.Bot.OutputDir,
		Log:       logger,
	}
	sped := receitanet.NewSped(client, organizer, logger)

	return receitanet.NewBot(client, sped, receitanet.BotSettings{
		DocsDir:     cfg.Bot.DocsDir,
		Attempts:    cfg.Bot.Attempts,
		AttemptWait: cfg.Bot.AttemptWait,
	}, logger), nil
}
