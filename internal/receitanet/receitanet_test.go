package receitanet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nexconsult/receitanet-bx/internal/config"
	"github.com/nexconsult/receitanet-bx/internal/desktop"
	"github.com/nexconsult/receitanet-bx/internal/desktop/desktoptest"
	"github.com/nexconsult/receitanet-bx/internal/models"
	"github.com/nexconsult/receitanet-bx/internal/popup"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

const (
	testShortcut = `C:\bot\Receitanet BX.lnk`
	testProcess  = "javaw.exe"
)

type fakeOrganizer struct {
	calls [][2]string
	files []string
	err   error
}

func (o *fakeOrganizer) Organize(cnpj, system string) ([]string, error) {
	o.calls = append(o.calls, [2]string{cnpj, system})
	return o.files, o.err
}

type harness struct {
	screen    *desktoptest.Screen
	window    *desktoptest.Window
	lists     *desktop.Templates
	client    *Client
	sped      *Sped
	organizer *fakeOrganizer
	hook      *test.Hook
	opens     int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	h := &harness{
		hook:      hook,
		screen:    desktoptest.NewScreen(),
		window:    desktoptest.NewWindow(),
		lists:     desktop.NewTemplates(1),
		organizer: &fakeOrganizer{files: []string{"out/a.txt"}},
	}
	h.window.OnOpen = func() {
		h.opens++
		h.window.SetRunning(testProcess, true)
	}
	h.lists.SetList(listCertificado, "certificado-1")
	h.lists.SetList(listEntrar, "entrar-1")
	h.lists.SetList(listSelecioneSistema, "selecione-sistema-1")
	h.lists.SetList(listSelecioneArquivo, "selecione-arquivo-1")
	h.lists.SetList(listSelecionePeriodo, "selecione-periodo-1")
	h.lists.SetList(listMarcar, "marcar-1")
	h.lists.SetList(listSelecionarTodos, "todos-1")
	h.lists.SetList(listBaixar, "baixar-1")
	h.lists.SetList(listSeletorBox, "seletor-1")

	resolver := popup.NewResolver(h.screen, desktop.ClickConfirm{Screen: h.screen}, logger,
		popup.WithPollInterval(time.Millisecond),
		popup.WithMaxPolls(5),
	)
	h.client = NewClient(Deps{
		Screen:   h.screen,
		Window:   h.window,
		Lists:    h.lists,
		Resolver: resolver,
		Logger:   logger,
	}, Settings{
		AppName:       "Receitanet BX",
		AppShortcut:   testShortcut,
		ProcessName:   testProcess,
		LoginAttempts: 2,
		Timeouts: config.TimeoutConfig{
			PollInterval:     time.Millisecond,
			ClickAttempts:    2,
			DownloadAttempts: 2,
		},
	})
	h.sped = NewSped(h.client, h.organizer, logger)
	return h
}

// showLogin makes every login screen element visible.
func (h *harness) showLogin() {
	h.screen.Show("certificado-1", imgComboboxPerfil, imgSelecionarProcurador,
		imgProcuradorPF, imgProcuradorPJ, imgInputPJ, "entrar-1", imgLoginEfetuado)
}

// showForm makes the search form of p visible with empty comboboxes.
func (h *harness) showForm(p Profile) {
	h.screen.Show(imgIconPesquisa, "selecione-sistema-1", "selecione-arquivo-1", "selecione-periodo-1",
		p.SystemImage, p.FileTypeImage, p.PeriodImage,
		imgInputDataInicio, imgInputDataFim, imgButtonCriteriosAcima, imgButtonPesquisar,
		imgBoxBuscarTodos, imgInputDataInicioFiscal, imgInputDataFimFiscal)
}

func (h *harness) showDownload() {
	h.screen.Show(imgIconAcompanhamento, "marcar-1", "todos-1", "baixar-1", imgFimDownload)
}

func request(system string) models.DownloadRequest {
	return models.DownloadRequest{
		CNPJ:      "44.616.568/0001-07",
		System:    system,
		StartDate: "2018-01-01",
		EndDate:   "31/12/2018",
	}
}

func mustProfile(t *testing.T, system string) Profile {
	t.Helper()
	p, err := ProfileFor(system)
	if err != nil {
		t.Fatalf("ProfileFor(%q) error: %v", system, err)
	}
	return p
}

func TestProfiles(t *testing.T) {
	systems := Systems()
	if len(systems) != 4 {
		t.Fatalf("expected 4 systems, got %v", systems)
	}
	for _, s := range systems {
		p := mustProfile(t, s)
		if p.System != s {
			t.Errorf("profile %q has system %q", s, p.System)
		}
		for _, id := range []string{p.SystemImage, p.PreviousSystemImage, p.FileTypeImage, p.FileTypeValidation, p.PeriodImage, p.PreviousPeriodImage} {
			if id == "" {
				continue
			}
			if _, ok := imageManifest[id]; !ok {
				t.Errorf("profile %q uses unknown image %q", s, id)
			}
		}
	}

	if mustProfile(t, models.SystemContabil).Mode != ModeSearch {
		t.Error("expected SPED Contábil to use the search mode")
	}
	if mustProfile(t, models.SystemFiscal).Mode != ModeFiscal {
		t.Error("expected SPED Fiscal to use the fiscal mode")
	}
	if _, err := ProfileFor("SPED Folha"); !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("expected ErrUnknownSystem, got %v", err)
	}
}

func TestSubmissionCatalogImagesAreKnown(t *testing.T) {
	for _, o := range popup.SubmissionCatalog() {
		if _, ok := imageManifest[o.ProbeID]; !ok {
			t.Errorf("catalog probe %q has no image", o.ProbeID)
		}
	}
}

func TestLoadImages(t *testing.T) {
	if err := LoadImages(desktop.NewTemplates(1), t.TempDir()); err == nil {
		t.Error("expected an error for an empty image root")
	}
}

func TestLogin(t *testing.T) {
	h := newHarness(t)
	h.showLogin()

	if err := h.client.Login(context.Background(), "44616568000107"); err != nil {
		t.Fatalf("Login() error: %v\nevents: %s", err, h.screen)
	}
	if h.opens != 1 {
		t.Errorf("expected one launch, got %d", h.opens)
	}
	if h.screen.Count("paste 44616568000107") != 1 {
		t.Errorf("expected the CNPJ to be pasted once, events: %s", h.screen)
	}
	if h.screen.Count("press ctrl+a") != 1 {
		t.Errorf("expected the field to be cleared first, events: %s", h.screen)
	}
	if h.window.Count("maximize") != 1 {
		t.Errorf("expected the window to be maximized, events: %q", h.window.Events())
	}
	if h.window.Count("kill "+testProcess) != 0 {
		t.Error("expected the application to stay open")
	}
}

func TestLoginRelaunchesUntilLoggedIn(t *testing.T) {
	h := newHarness(t)
	h.showLogin()
	h.screen.Hide(imgLoginEfetuado)
	h.window.OnOpen = func() {
		h.opens++
		if h.opens == 2 {
			h.screen.Show(imgLoginEfetuado)
		}
	}

	if err := h.client.Login(context.Background(), "44616568000107"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if h.opens != 2 {
		t.Errorf("expected two launches, got %d", h.opens)
	}
	if h.window.Count("kill "+testProcess) != 1 {
		t.Errorf("expected the failed session to be closed, events: %q", h.window.Events())
	}
}

func TestLoginGivesUp(t *testing.T) {
	h := newHarness(t)
	h.showLogin()
	h.screen.Hide("certificado-1")

	err := h.client.Login(context.Background(), "44616568000107")
	if !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}
	if h.opens != 2 {
		t.Errorf("expected two launches, got %d", h.opens)
	}
	if h.window.Count("kill "+testProcess) != 2 {
		t.Errorf("expected every session to be closed, events: %q", h.window.Events())
	}
}

func TestLoginStopsOnCancel(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.client.Login(ctx, "44616568000107"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSelectOption(t *testing.T) {
	p := mustProfile(t, models.SystemECF)

	t.Run("placeholder", func(t *testing.T) {
		h := newHarness(t)
		h.screen.Show("selecione-sistema-1", p.SystemImage)
		if err := h.client.selectOption(context.Background(), listSelecioneSistema, p.SystemImage, p.SystemImage, p.PreviousSystemImage); err != nil {
			t.Fatalf("selectOption() error: %v", err)
		}
		if h.screen.Count("click selecione-sistema-1") != 1 || h.screen.Count("click "+p.SystemImage) != 1 {
			t.Errorf("expected placeholder then target clicks, events: %s", h.screen)
		}
	})

	t.Run("already selected", func(t *testing.T) {
		h := newHarness(t)
		h.screen.Show(p.SystemImage)
		if err := h.client.selectOption(context.Background(), listSelecioneSistema, p.SystemImage, p.SystemImage, p.PreviousSystemImage); err != nil {
			t.Fatalf("selectOption() error: %v", err)
		}
		if len(h.screen.Events()) != 0 {
			t.Errorf("expected no input, events: %s", h.screen)
		}
	})

	t.Run("previous selected", func(t *testing.T) {
		h := newHarness(t)
		h.screen.Show(p.PreviousSystemImage)
		h.screen.OnClick(p.PreviousSystemImage, func(s *desktoptest.Screen) { s.Show(p.SystemImage) })
		if err := h.client.selectOption(context.Background(), listSelecioneSistema, p.SystemImage, p.SystemImage, p.PreviousSystemImage); err != nil {
			t.Fatalf("selectOption() error: %v", err)
		}
		want := []string{"click " + p.PreviousSystemImage, "click " + p.SystemImage}
		got := h.screen.Events()
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("nothing matches", func(t *testing.T) {
		h := newHarness(t)
		err := h.client.selectOption(context.Background(), listSelecioneSistema, p.SystemImage, p.SystemImage, p.PreviousSystemImage)
		if !errors.Is(err, ErrOptionNotFound) {
			t.Fatalf("expected ErrOptionNotFound, got %v", err)
		}
	})
}

func TestSelectSystemRequiresRunningApp(t *testing.T) {
	h := newHarness(t)
	err := h.client.SelectSystem(context.Background(), mustProfile(t, models.SystemECF))
	if !errors.Is(err, ErrAppNotRunning) {
		t.Fatalf("expected ErrAppNotRunning, got %v", err)
	}
}

func TestInputDates(t *testing.T) {
	h := newHarness(t)
	h.screen.Show(imgInputDataInicio, imgInputDataFim)

	if err := h.client.InputDates(context.Background(), "01/01/2018", "31/12/2018"); err != nil {
		t.Fatalf("InputDates() error: %v", err)
	}
	want := []string{
		"double-click " + imgInputDataInicio,
		"type 01/01/2018",
		"press tab",
		"double-click " + imgInputDataFim,
		"type 31/12/2018",
		"press enter",
	}
	got := h.screen.Events()
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestInputDatesMissingField(t *testing.T) {
	h := newHarness(t)
	err := h.client.InputDates(context.Background(), "01/01/2018", "31/12/2018")
	if !errors.Is(err, ErrFieldNotFound) {
		t.Fatalf("expected ErrFieldNotFound, got %v", err)
	}
}

func TestInputFiscalFields(t *testing.T) {
	h := newHarness(t)
	h.screen.Show(imgBoxBuscarTodos, imgInputDataInicioFiscal, imgInputDataFimFiscal, imgBoxUltimoArquivo, imgButtonPesquisar)

	if err := h.client.InputFiscalFields(context.Background(), "01/01/2018", "31/12/2018"); err != nil {
		t.Fatalf("InputFiscalFields() error: %v", err)
	}
	if n := h.screen.Count("press tab"); n != 4 {
		t.Errorf("expected 4 tabs, got %d: %s", n, h.screen)
	}
	for _, e := range []string{"click " + imgBoxBuscarTodos, "click " + imgBoxUltimoArquivo, "click " + imgButtonPesquisar, "type 01/01/2018", "type 31/12/2018"} {
		if h.screen.Count(e) != 1 {
			t.Errorf("expected %q once, events: %s", e, h.screen)
		}
	}
}

func TestInputFiscalFieldsWithoutLastFileBox(t *testing.T) {
	h := newHarness(t)
	h.screen.Show(imgBoxBuscarTodos, imgInputDataInicioFiscal, imgInputDataFimFiscal, imgButtonPesquisar)

	if err := h.client.InputFiscalFields(context.Background(), "01/01/2018", "31/12/2018"); err != nil {
		t.Fatalf("InputFiscalFields() error: %v", err)
	}
	if h.screen.Count("click "+imgButtonPesquisar) != 0 {
		t.Errorf("expected no search click, events: %s", h.screen)
	}
}

func TestValidateRequestWaitsForProcessing(t *testing.T) {
	h := newHarness(t)
	h.screen.Show(imgMsgAguardando)
	h.screen.OnLocate(imgMsgAguardando, func(s *desktoptest.Screen, n int) {
		if n == 3 {
			s.Hide(imgMsgAguardando)
			s.Show("pop-up-pedido")
		}
	})

	outcome, err := h.client.ValidateRequest(context.Background())
	if err != nil {
		t.Fatalf("ValidateRequest() error: %v", err)
	}
	if outcome.Result != popup.ResultRequestRegistered {
		t.Errorf("expected %q, got %q", popup.ResultRequestRegistered, outcome.Result)
	}
	if h.screen.Locates(imgMsgAguardando) != 3 {
		t.Errorf("expected 3 waits, got %d", h.screen.Locates(imgMsgAguardando))
	}
	if h.screen.Count("click pop-up-pedido") != 1 || h.screen.Count("press enter") != 1 {
		t.Errorf("expected the dialog to be acknowledged once, events: %s", h.screen)
	}
}

func TestValidateRequestNoDialog(t *testing.T) {
	h := newHarness(t)
	_, err := h.client.ValidateRequest(context.Background())
	if !errors.Is(err, popup.ErrNoOutcome) {
		t.Fatalf("expected ErrNoOutcome, got %v", err)
	}
}

func TestDownloadFiles(t *testing.T) {
	h := newHarness(t)
	h.showDownload()

	if err := h.client.DownloadFiles(context.Background()); err != nil {
		t.Fatalf("DownloadFiles() error: %v", err)
	}
	want := []string{"click " + imgIconAcompanhamento, "click marcar-1", "click todos-1", "click marcar-1", "click baixar-1"}
	got := h.screen.Events()
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestDownloadFilesTimeout(t *testing.T) {
	h := newHarness(t)
	h.showDownload()
	h.screen.Hide(imgFimDownload)

	if err := h.client.DownloadFiles(context.Background()); !errors.Is(err, ErrDownloadTimeout) {
		t.Fatalf("expected ErrDownloadTimeout, got %v", err)
	}
}

func TestSpedCriteriaRegistered(t *testing.T) {
	h := newHarness(t)
	p := mustProfile(t, models.SystemContribuicoes)
	h.window.SetRunning(testProcess, true)
	h.showForm(p)
	h.showDownload()
	h.screen.OnClick(imgButtonCriteriosAcima, func(s *desktoptest.Screen) { s.Show("pop-up-pedido") })

	req := request(models.SystemContribuicoes)
	req.CNPJ = "44616568000107"
	report, err := h.sped.Download(context.Background(), p, req)
	if err != nil {
		t.Fatalf("Download() error: %v\nevents: %s", err, h.screen)
	}
	if len(report.Outcomes) != 1 || !report.Outcomes[0].Registered() {
		t.Fatalf("expected one registered outcome, got %+v", report.Outcomes)
	}
	if len(report.Files) != 1 || report.Files[0] != "out/a.txt" {
		t.Errorf("expected organized files, got %v", report.Files)
	}
	if len(h.organizer.calls) != 1 || h.organizer.calls[0] != [2]string{"44616568000107", models.SystemContribuicoes} {
		t.Errorf("unexpected organizer calls %v", h.organizer.calls)
	}
	if h.screen.Count("click "+imgButtonCriteriosAcima) != 1 {
		t.Errorf("expected one criteria click, events: %s", h.screen)
	}

	logged := 0
	for _, e := range h.hook.AllEntries() {
		if e.Message == report.Outcomes[0].LogMessage {
			logged++
		}
	}
	if logged != 1 {
		t.Errorf("expected the popup message logged once, got %d", logged)
	}
}

func TestSpedSkipsDownloadWhenNotRegistered(t *testing.T) {
	h := newHarness(t)
	p := mustProfile(t, models.SystemECF)
	h.window.SetRunning(testProcess, true)
	h.showForm(p)
	h.showDownload()
	h.screen.Show("pop-up-nao-encontrado")

	report, err := h.sped.Download(context.Background(), p, request(models.SystemECF))
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if len(report.Outcomes) != 1 || report.Outcomes[0].Result != popup.ResultNoFile {
		t.Fatalf("expected a no-file outcome, got %+v", report.Outcomes)
	}
	if h.screen.Count("click "+imgIconAcompanhamento) != 0 || len(h.organizer.calls) != 0 {
		t.Errorf("expected no download, events: %s", h.screen)
	}
}

func TestSpedSearchRequestsMarkedFiles(t *testing.T) {
	h := newHarness(t)
	p := mustProfile(t, models.SystemContabil)
	h.window.SetRunning(testProcess, true)
	h.showForm(p)
	h.showDownload()
	h.screen.Show(imgResultadoPesquisa, "seletor-1", imgButtonSolicitarMarcados)
	h.screen.OnClick(imgButtonSolicitarMarcados, func(s *desktoptest.Screen) { s.Show("pop-up-pedido") })

	report, err := h.sped.Download(context.Background(), p, request(models.SystemContabil))
	if err != nil {
		t.Fatalf("Download() error: %v\nevents: %s", err, h.screen)
	}
	if report.Registered() != 1 {
		t.Errorf("expected a registered request, got %+v", report.Outcomes)
	}
	if h.screen.Count("click seletor-1") != 1 || h.screen.Count("click "+imgButtonSolicitarMarcados) != 1 {
		t.Errorf("expected files to be marked and requested, events: %s", h.screen)
	}
}

func TestSpedSearchWithoutResults(t *testing.T) {
	h := newHarness(t)
	p := mustProfile(t, models.SystemContabil)
	h.window.SetRunning(testProcess, true)
	h.showForm(p)
	h.screen.Show("popup-nenhum-arquivo")

	report, err := h.sped.Download(context.Background(), p, request(models.SystemContabil))
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if len(report.Outcomes) != 1 || report.Outcomes[0].Result != popup.ResultNoFile {
		t.Fatalf("expected a no-file outcome, got %+v", report.Outcomes)
	}
	if h.screen.Count("click seletor-1") != 0 {
		t.Errorf("expected nothing marked, events: %s", h.screen)
	}
}

func TestSpedFiscal(t *testing.T) {
	h := newHarness(t)
	p := mustProfile(t, models.SystemFiscal)
	h.window.SetRunning(testProcess, true)
	h.showForm(p)
	h.showDownload()
	h.screen.Show(imgBoxUltimoArquivo)
	h.screen.OnClick(imgButtonPesquisar, func(s *desktoptest.Screen) {
		s.Show(imgResultadoPesquisa, "seletor-1", imgButtonSolicitarMarcados)
	})
	h.screen.OnClick(imgButtonSolicitarMarcados, func(s *desktoptest.Screen) { s.Show("pop-up-pedido") })

	report, err := h.sped.Download(context.Background(), p, request(models.SystemFiscal))
	if err != nil {
		t.Fatalf("Download() error: %v\nevents: %s", err, h.screen)
	}
	if report.Registered() != 1 || len(report.Files) != 1 {
		t.Errorf("expected a registered download, got %+v", report)
	}
	if h.screen.Count("click "+imgBoxBuscarTodos) != 1 {
		t.Errorf("expected the fiscal form to be used, events: %s", h.screen)
	}
}

func TestBotRun(t *testing.T) {
	h := newHarness(t)
	p := mustProfile(t, models.SystemContribuicoes)
	h.showLogin()
	h.showForm(p)
	h.showDownload()
	h.screen.Show("pop-up-pedido")

	docs := filepath.Join(t.TempDir(), "docs")
	if err := os.MkdirAll(docs, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(docs, "stale.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger, _ := test.NewNullLogger()
	bot := NewBot(h.client, h.sped, BotSettings{DocsDir: docs, Attempts: 2, AttemptWait: time.Millisecond}, logger)

	report, err := bot.Run(context.Background(), request(models.SystemContribuicoes))
	if err != nil {
		t.Fatalf("Run() error: %v\nevents: %s", err, h.screen)
	}
	if report.CNPJ != "44616568000107" || report.StartDate != "01/01/2018" {
		t.Errorf("expected a normalized request in the report, got %+v", report)
	}
	if report.Elapsed == "" {
		t.Error("expected the elapsed time to be set")
	}
	if h.window.Count("kill "+testProcess) != 1 {
		t.Errorf("expected the application to be closed once, events: %q", h.window.Events())
	}
	entries, err := os.ReadDir(docs)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected an empty download folder, got %d entries", len(entries))
	}
}

func TestBotRunRetriesWholeExecution(t *testing.T) {
	h := newHarness(t)
	p := mustProfile(t, models.SystemContribuicoes)
	h.showLogin()
	h.showForm(p)
	h.showDownload()
	h.screen.Hide(imgIconAcompanhamento)
	h.screen.Show("pop-up-pedido")

	logger, _ := test.NewNullLogger()
	bot := NewBot(h.client, h.sped, BotSettings{DocsDir: t.TempDir(), Attempts: 2, AttemptWait: time.Millisecond}, logger)

	_, err := bot.Run(context.Background(), request(models.SystemContribuicoes))
	if !errors.Is(err, desktop.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if h.opens != 2 {
		t.Errorf("expected one login per attempt, got %d", h.opens)
	}
	if h.window.Count("kill "+testProcess) != 2 {
		t.Errorf("expected the application to be closed after each attempt, events: %q", h.window.Events())
	}
}

func TestBotRunRejectsInvalidRequests(t *testing.T) {
	tests := []struct {
		name string
		req  models.DownloadRequest
		want error
	}{
		{"inverted range", models.DownloadRequest{CNPJ: "44616568000107", System: models.SystemECF, StartDate: "31/12/2018", EndDate: "01/01/2018"}, ErrInvalidRange},
		{"unknown system", models.DownloadRequest{CNPJ: "44616568000107", System: "SPED Folha", StartDate: "01/01/2018", EndDate: "31/12/2018"}, ErrUnknownSystem},
		{"invalid cnpj", models.DownloadRequest{CNPJ: "123", System: models.SystemECF, StartDate: "01/01/2018", EndDate: "31/12/2018"}, models.ErrInvalidCNPJ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			logger, _ := test.NewNullLogger()
			bot := NewBot(h.client, h.sped, BotSettings{DocsDir: t.TempDir(), Attempts: 3}, logger)

			_, err := bot.Run(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(h.window.Events()) != 0 {
				t.Errorf("expected the application untouched, events: %q", h.window.Events())
			}
		})
	}
}
