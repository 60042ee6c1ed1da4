package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nexconsult/receitanet-bx/internal/config"
	"github.com/nexconsult/receitanet-bx/internal/logger"
	"github.com/nexconsult/receitanet-bx/internal/models"
	"github.com/nexconsult/receitanet-bx/internal/popup"
	"github.com/nexconsult/receitanet-bx/internal/receitanet"
	"github.com/nexconsult/receitanet-bx/internal/utils"
)

// Runner executes one download request.
type Runner interface {
	Run(ctx context.Context, req models.DownloadRequest) (*models.RunReport, error)
}

// BotFactory builds the runner used by the run command.
type BotFactory func(cfg *config.Config, log *logrus.Logger) (Runner, error)

// runOptions are the flags of the run command.
type runOptions struct {
	file          string
	cnpj          string
	system        string
	start         string
	end           string
	previousMonth bool
	previousYear  bool
}

// NewRootCommand builds the command tree. newBot is only called by run.
func NewRootCommand(newBot BotFactory) *cobra.Command {
	root := &cobra.Command{
		Use:          "receitanet-bx",
		Short:        "Baixa arquivos SPED pelo Receitanet BX",
		Long:         `Automates the Receitanet BX desktop client to request and download SPED files for a taxpayer.`,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCommand(newBot), newCatalogCommand(), newSystemsCommand())
	return root
}

func newRunCommand(newBot BotFactory) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one download request",
		Long: `Run one download request on this desktop. The request comes from flags or
from a JSON document ({"cnpj", "sistema", "datainicial", "datafinal"}) read from
--file, or from stdin when no CNPJ flag is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request(cmd.InOrStdin(), time.Now())
			if err != nil {
				return err
			}

			if err := godotenv.Load(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "No .env file found, using system environment variables")
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			now := time.Now()
			log, logFile, err := logger.NewWithFile(cfg.Log.Level, cfg.Log.Format, cfg.Log.Path, now)
			if err != nil {
				return err
			}
			defer logFile.Close()
			if _, err := logger.DeleteOldLogs(log, cfg.Log.Path, cfg.Log.RetentionDays, now); err != nil {
				log.WithError(err).Warn("Log cleanup failed")
			}

			bot, err := newBot(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			report, err := bot.Run(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", `JSON request file, "-" for stdin`)
	f.StringVar(&opts.cnpj, "cnpj", "", "CNPJ do contribuinte")
	f.StringVarP(&opts.system, "sistema", "s", "", "Sistema SPED")
	f.StringVar(&opts.start, "inicio", "", "Data inicial")
	f.StringVar(&opts.end, "fim", "", "Data final")
	f.BoolVar(&opts.previousMonth, "mes-anterior", false, "Use the previous calendar month as the period")
	f.BoolVar(&opts.previousYear, "ano-anterior", false, "Use the previous calendar year as the period")
	cmd.MarkFlagsMutuallyExclusive("mes-anterior", "ano-anterior")
	return cmd
}

func newCatalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the dialogs recognized after a request is submitted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), popup.SubmissionCatalog())
		},
	}
}

func newSystemsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "systems",
		Short: "List the supported SPED systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), receitanet.Systems())
		},
	}
}

// request assembles the request from the flags or a JSON document.
func (o *runOptions) request(stdin io.Reader, now time.Time) (models.DownloadRequest, error) {
	var req models.DownloadRequest

	switch {
	case o.file == "-" || (o.file == "" && o.cnpj == ""):
		if err := json.NewDecoder(stdin).Decode(&req); err != nil {
			return req, fmt.Errorf("decoding request from stdin: %w", err)
		}
	case o.file != "":
		data, err := os.ReadFile(o.file)
		if err != nil {
			return req, err
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("decoding %s: %w", o.file, err)
		}
	default:
		req = models.DownloadRequest{
			CNPJ:      o.cnpj,
			System:    o.system,
			StartDate: o.start,
			EndDate:   o.end,
		}
	}

	switch {
	case o.previousMonth:
		req.StartDate, req.EndDate = utils.PreviousMonthRange(now)
	case o.previousYear:
		req.StartDate, req.EndDate = utils.PreviousYearRange(now)
	}

	_, err := receitanet.Validate(&req)
	return req, err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Execute runs the command tree with newBot.
func Execute(newBot BotFactory) {
	if err := NewRootCommand(newBot).Execute(); err != nil {
		os.Exit(1)
	}
}
