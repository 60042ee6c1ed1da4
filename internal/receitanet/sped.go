package receitanet

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/nexconsult/receitanet-bx/internal/desktop"
	"github.com/nexconsult/receitanet-bx/internal/models"
	"github.com/nexconsult/receitanet-bx/internal/popup"
	"github.com/sirupsen/logrus"
)

// ErrUnknownSystem is returned for a system with no profile.
var ErrUnknownSystem = errors.New("unknown SPED system")

// Mode is how a system's search form is submitted.
type Mode int

const (
	// ModeCriteria requests every file matching the criteria directly.
	ModeCriteria Mode = iota
	// ModeSearch lists the matching files first and requests the marked ones.
	ModeSearch
	// ModeFiscal is ModeSearch with the SPED Fiscal form.
	ModeFiscal
)

func (m Mode) String() string {
	switch m {
	case ModeCriteria:
		return "criteria"
	case ModeSearch:
		return "search"
	case ModeFiscal:
		return "fiscal"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Profile holds the images and submission mode of one SPED system.
type Profile struct {
	System string

	SystemImage         string
	PreviousSystemImage string

	FileTypeImage      string
	FileTypeValidation string

	PeriodImage         string
	PreviousPeriodImage string

	Mode Mode
}

var profiles = map[string]Profile{
	models.SystemContribuicoes: {
		System:              models.SystemContribuicoes,
		SystemImage:         "combobox-sped-contribuicoes",
		FileTypeImage:       "combobox-escrituracao",
		FileTypeValidation:  "combobox-validacao-escrituracao",
		PeriodImage:         "combobox-periodo-escrituracao",
		PreviousPeriodImage: "combobox-entrega-da-incorporada",
		Mode:                ModeCriteria,
	},
	models.SystemContabil: {
		System:              models.SystemContabil,
		SystemImage:         "combobox-sped-contabil",
		PreviousSystemImage: "combobox-sped-contribuicoes",
		FileTypeImage:       "combobox-escrituracao-contabil-digital",
		FileTypeValidation:  "combobox-escrituracao-contabil-digital",
		PeriodImage:         "validacao-periodo-contabil",
		Mode:                ModeSearch,
	},
	models.SystemECF: {
		System:              models.SystemECF,
		SystemImage:         "combobox-sped-ecf",
		PreviousSystemImage: "combobox-sped-contabil",
		FileTypeImage:       "combobox-escrituracao",
		FileTypeValidation:  "combobox-validacao-escrituracao",
		PeriodImage:         "combobox-periodo-escrituracao",
		PreviousPeriodImage: "combobox-entrega",
		Mode:                ModeCriteria,
	},
	models.SystemFiscal: {
		System:              models.SystemFiscal,
		SystemImage:         "combobox-sped-fiscal",
		PreviousSystemImage: "combobox-sped-ecf",
		FileTypeImage:       "combobox-escrituracao-fiscal",
		FileTypeValidation:  "combobox-escrituracao-fiscal",
		PeriodImage:         "validacao-periodo-fiscal",
		Mode:                ModeFiscal,
	},
}

// ProfileFor returns the profile of system.
func ProfileFor(system string) (Profile, error) {
	p, ok := profiles[system]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownSystem, system)
	}
	return p, nil
}

// Systems lists the supported systems, sorted.
func Systems() []string {
	out := make([]string, 0, len(profiles))
	for s := range profiles {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Organizer moves downloaded files to their destination.
type Organizer interface {
	Organize(cnpj, system string) ([]string, error)
}

// Sped runs the request flow of a system on a logged in client.
type Sped struct {
	client    *Client
	organizer Organizer
	log       *logrus.Logger
}

// NewSped creates a flow runner.
func NewSped(client *Client, organizer Organizer, logger *logrus.Logger) *Sped {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Sped{client: client, organizer: organizer, log: logger}
}

// Download fills the form of p for req, submits it and, when the request is
// registered, downloads and organizes the files.
func (s *Sped) Download(ctx context.Context, p Profile, req models.DownloadRequest) (*models.RunReport, error) {
	report := &models.RunReport{
		System:    p.System,
		CNPJ:      req.CNPJ,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	log := s.log.WithFields(logrus.Fields{
		"system": p.System,
		"cnpj":   req.CNPJ,
		"mode":   p.Mode.String(),
	})
	c := s.client

	if err := c.SelectSystem(ctx, p); err != nil {
		return report, err
	}
	if err := c.SelectFileType(ctx, p); err != nil {
		return report, err
	}
	if err := c.SelectPeriod(ctx, p); err != nil {
		return report, err
	}

	var err error
	switch p.Mode {
	case ModeCriteria:
		err = s.criteria(ctx, log, report, req)
	case ModeSearch:
		err = s.search(ctx, log, report, req)
	case ModeFiscal:
		err = s.fiscal(ctx, log, report, req)
	default:
		err = fmt.Errorf("unsupported mode %s", p.Mode)
	}
	return report, err
}

func (s *Sped) criteria(ctx context.Context, log *logrus.Entry, report *models.RunReport, req models.DownloadRequest) error {
	c := s.client
	if err := c.InputDates(ctx, req.StartDate, req.EndDate); err != nil {
		return err
	}
	if err := c.click(ctx, imgButtonCriteriosAcima, confExact); err != nil {
		return fmt.Errorf("requesting files: %w", err)
	}
	return s.submit(ctx, log, report)
}

func (s *Sped) search(ctx context.Context, log *logrus.Entry, report *models.RunReport, req models.DownloadRequest) error {
	c := s.client
	if err := c.InputDates(ctx, req.StartDate, req.EndDate); err != nil {
		return err
	}
	if err := c.click(ctx, imgButtonPesquisar, confDefault); err != nil {
		return fmt.Errorf("searching files: %w", err)
	}

	_, found, err := desktop.WaitFor(ctx, c.screen, imgResultadoPesquisa, confExact, c.t.SearchResultTimeout, c.t.PollInterval)
	if err != nil {
		return err
	}
	if !found {
		log.Info("Search returned no list, checking the dialog")
		_, err := s.record(ctx, log, report)
		return err
	}
	return s.requestMarked(ctx, log, report)
}

func (s *Sped) fiscal(ctx context.Context, log *logrus.Entry, report *models.RunReport, req models.DownloadRequest) error {
	c := s.client
	if err := c.InputFiscalFields(ctx, req.StartDate, req.EndDate); err != nil {
		return err
	}

	_, found, err := c.visible(ctx, imgResultadoPesquisa, confStrict)
	if err != nil {
		return err
	}
	if !found {
		log.Info("Search returned no list, checking the dialog")
		_, err := s.record(ctx, log, report)
		return err
	}
	if err := desktop.Sleep(ctx, c.t.ResultSettleDelay); err != nil {
		return err
	}
	return s.requestMarked(ctx, log, report)
}

// requestMarked marks every listed file and requests them.
func (s *Sped) requestMarked(ctx context.Context, log *logrus.Entry, report *models.RunReport) error {
	c := s.client
	if err := c.clickAny(ctx, listSeletorBox, confDefault, c.t.ClickAttempts); err != nil {
		return fmt.Errorf("marking files: %w", err)
	}
	if err := desktop.Sleep(ctx, c.t.SelectionDelay); err != nil {
		return err
	}
	at, found, err := desktop.WaitFor(ctx, c.screen, imgButtonSolicitarMarcados, confDefault, c.t.SearchResultTimeout, c.t.PollInterval)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("requesting marked files: %s: %w", imgButtonSolicitarMarcados, desktop.ErrNotFound)
	}
	if err := c.screen.Click(ctx, at); err != nil {
		return err
	}
	return s.submit(ctx, log, report)
}

// record validates the request and appends its outcome.
func (s *Sped) record(ctx context.Context, log *logrus.Entry, report *models.RunReport) (popup.Outcome, error) {
	outcome, err := s.client.ValidateRequest(ctx)
	if err != nil {
		return popup.Outcome{}, err
	}
	report.Outcomes = append(report.Outcomes, outcome)
	// o resolver já registrou a mensagem do popup
	log.WithFields(logrus.Fields{
		"result": outcome.Result,
		"status": outcome.Status,
	}).Debug("Request outcome recorded")
	return outcome, nil
}

// submit records the outcome and downloads the files of a registered request.
func (s *Sped) submit(ctx context.Context, log *logrus.Entry, report *models.RunReport) error {
	outcome, err := s.record(ctx, log, report)
	if err != nil {
		return err
	}
	if !outcome.Registered() {
		log.WithField("result", outcome.Result).Info("Nothing to download")
		return nil
	}

	if err := s.client.DownloadFiles(ctx); err != nil {
		return err
	}
	moved, err := s.organizer.Organize(report.CNPJ, report.System)
	if err != nil {
		return fmt.Errorf("organizing files: %w", err)
	}
	report.Files = append(report.Files, moved...)
	log.WithField("files", len(moved)).Info("Files organized")
	return nil
}
