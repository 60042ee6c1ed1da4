package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nexconsult/receitanet-bx/internal/config"
	"github.com/nexconsult/receitanet-bx/internal/models"
	"github.com/nexconsult/receitanet-bx/internal/receitanet"
	"github.com/nexconsult/receitanet-bx/internal/utils"
)

const stdinRequest = `{"Cnpj":"44.616.568/0001-07","Sistema":"SPED ECF","DataInicial":"2018-01-01","DataFinal":"31/12/2018"}`

func TestRunOptionsRequest(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	file := filepath.Join(t.TempDir(), "pedido.json")
	body := `{"cnpj":"44616568000107","sistema":"SPED Fiscal","datainicial":"01/02/2020","datafinal":"2020/02/29"}`
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		opts  runOptions
		stdin string
		want  models.DownloadRequest
	}{
		{
			name: "flags",
			opts: runOptions{cnpj: "44.616.568/0001-07", system: models.SystemContribuicoes, start: "2018-01-01", end: "31-12-2018"},
			want: models.DownloadRequest{CNPJ: "44616568000107", System: models.SystemContribuicoes, StartDate: "01/01/2018", EndDate: "31/12/2018"},
		},
		{
			name:  "stdin when no cnpj flag",
			stdin: stdinRequest,
			want:  models.DownloadRequest{CNPJ: "44616568000107", System: models.SystemECF, StartDate: "01/01/2018", EndDate: "31/12/2018"},
		},
		{
			name:  "explicit stdin",
			opts:  runOptions{file: "-", cnpj: "ignored"},
			stdin: stdinRequest,
			want:  models.DownloadRequest{CNPJ: "44616568000107", System: models.SystemECF, StartDate: "01/01/2018", EndDate: "31/12/2018"},
		},
		{
			name: "file",
			opts: runOptions{file: file},
			want: models.DownloadRequest{CNPJ: "44616568000107", System: models.SystemFiscal, StartDate: "01/02/2020", EndDate: "29/02/2020"},
		},
		{
			name: "previous month overrides dates",
			opts: runOptions{cnpj: "44616568000107", system: models.SystemContabil, start: "01/01/2018", end: "31/12/2018", previousMonth: true},
			want: models.DownloadRequest{CNPJ: "44616568000107", System: models.SystemContabil, StartDate: "01/02/2026", EndDate: "28/02/2026"},
		},
		{
			name: "previous year",
			opts: runOptions{cnpj: "44616568000107", system: models.SystemECF, previousYear: true},
			want: models.DownloadRequest{CNPJ: "44616568000107", System: models.SystemECF, StartDate: "01/01/2025", EndDate: "31/12/2025"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.request(strings.NewReader(tt.stdin), now)
			if err != nil {
				t.Fatalf("request() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("request() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRunOptionsRequestErrors(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		opts  runOptions
		stdin string
		want  error
	}{
		{"invalid cnpj", runOptions{cnpj: "11111111111111", system: models.SystemECF, start: "01/01/2018", end: "31/12/2018"}, "", models.ErrInvalidCNPJ},
		{"invalid date", runOptions{cnpj: "44616568000107", system: models.SystemECF, start: "2018.01.01", end: "31/12/2018"}, "", utils.ErrInvalidDate},
		{"inverted range", runOptions{cnpj: "44616568000107", system: models.SystemECF, start: "31/12/2018", end: "01/01/2018"}, "", receitanet.ErrInvalidRange},
		{"unknown system", runOptions{cnpj: "44616568000107", system: "SPED Folha", start: "01/01/2018", end: "31/12/2018"}, "", receitanet.ErrUnknownSystem},
		{"missing file", runOptions{file: filepath.Join(t.TempDir(), "nope.json")}, "", os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.request(strings.NewReader(tt.stdin), now)
			if !errors.Is(err, tt.want) {
				t.Errorf("request() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := (&runOptions{}).request(strings.NewReader(`{"cnpj":`), now); err == nil {
		t.Error("expected malformed stdin to fail")
	}
}

type fakeRunner struct {
	got models.DownloadRequest
	err error
}

func (r *fakeRunner) Run(_ context.Context, req models.DownloadRequest) (*models.RunReport, error) {
	r.got = req
	if r.err != nil {
		return nil, r.err
	}
	return &models.RunReport{System: req.System, CNPJ: req.CNPJ, StartDate: req.StartDate, EndDate: req.EndDate}, nil
}

func execute(t *testing.T, newBot BotFactory, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_PATH", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	root := NewRootCommand(newBot)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunCommandPrintsReport(t *testing.T) {
	runner := &fakeRunner{}
	factory := func(cfg *config.Config, log *logrus.Logger) (Runner, error) {
		if cfg == nil || log == nil {
			t.Error("expected the factory to receive config and logger")
		}
		return runner, nil
	}

	out, err := execute(t, factory, "", "run", "--cnpj", "44616568000107", "-s", models.SystemECF, "--inicio", "01/01/2018", "--fim", "31/12/2018")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if runner.got.CNPJ != "44616568000107" || runner.got.System != models.SystemECF {
		t.Errorf("runner got %+v", runner.got)
	}

	var report models.RunReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decoding report: %v\n%s", err, out)
	}
	if report.System != models.SystemECF || report.StartDate != "01/01/2018" {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestRunCommandRejectsBeforeBuildingBot(t *testing.T) {
	called := false
	factory := func(*config.Config, *logrus.Logger) (Runner, error) {
		called = true
		return &fakeRunner{}, nil
	}

	_, err := execute(t, factory, "", "run", "--cnpj", "44616568000107", "-s", "SPED Folha", "--inicio", "01/01/2018", "--fim", "31/12/2018")
	if !errors.Is(err, receitanet.ErrUnknownSystem) {
		t.Fatalf("run error = %v, want ErrUnknownSystem", err)
	}
	if called {
		t.Error("bot was built for an invalid request")
	}
}

func TestRunCommandPropagatesBotErrors(t *testing.T) {
	boom := errors.New("login failed")
	factory := func(*config.Config, *logrus.Logger) (Runner, error) {
		return &fakeRunner{err: boom}, nil
	}

	_, err := execute(t, factory, stdinRequest, "run")
	if !errors.Is(err, boom) {
		t.Fatalf("run error = %v, want %v", err, boom)
	}
}

func TestRunCommandPeriodFlagsAreExclusive(t *testing.T) {
	factory := func(*config.Config, *logrus.Logger) (Runner, error) { return &fakeRunner{}, nil }

	_, err := execute(t, factory, "", "run", "--cnpj", "44616568000107", "-s", models.SystemECF, "--mes-anterior", "--ano-anterior")
	if err == nil {
		t.Fatal("expected --mes-anterior with --ano-anterior to fail")
	}
}

func TestListingCommands(t *testing.T) {
	out, err := execute(t, nil, "", "systems")
	if err != nil {
		t.Fatalf("systems error = %v", err)
	}
	var systems []string
	if err := json.Unmarshal([]byte(out), &systems); err != nil || len(systems) != 4 {
		t.Errorf("systems = %s (%v)", out, err)
	}

	out, err = execute(t, nil, "", "catalog")
	if err != nil {
		t.Fatalf("catalog error = %v", err)
	}
	if !strings.Contains(out, "pop-up-pedido") {
		t.Errorf("catalog output missing pop-up-pedido: %s", out)
	}
}
