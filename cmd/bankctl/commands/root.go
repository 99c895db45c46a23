package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JoeShih716/go-account-desk/internal/app/core/adapter/out/file"
	"github.com/JoeShih716/go-account-desk/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/go-account-desk/internal/app/core/domain"
	"github.com/JoeShih716/go-account-desk/internal/app/core/usecase"
	"github.com/JoeShih716/go-account-desk/pkg/config"
)

// app 子命令共用的相依物件
type app struct {
	cfg        config.Config
	logger     *slog.Logger
	accountLog *file.AccountLog
	core       *usecase.CoreUseCase
}

var (
	cfgPath  string
	logFile  string
	logLevel string
	appCtx   *app
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cfgPath, logFile, logLevel = "", "", ""
	appCtx = nil

	root := &cobra.Command{
		Use:          "bankctl",
		Short:        "Bank account management system",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "YAML config file (optional)")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "account log path (default accounts.txt)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug | info | warn | error (default warn)")

	root.AddCommand(menuCmd(), serveCmd(), demoCmd(), logCmd())
	return root
}

// buildApp 載入設定並建立相依物件，旗標優先於設定檔
func buildApp(stderr io.Writer) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	rate, limit, err := cfg.Defaults.Rates()
	if err != nil {
		return nil, err
	}
	defaults := domain.DefaultParams()
	defaults.InterestRate = rate
	defaults.OverdraftLimit = limit

	accountLog := file.NewAccountLog(cfg.LogFile)
	core := usecase.NewCoreUseCase(memory.NewDirectory(), accountLog,
		usecase.WithLogger(logger),
		usecase.WithDefaults(defaults),
	)
	logger.Debug("bankctl ready", slog.String("log_file", cfg.LogFile), slog.String("config", cfgPath))

	return &app{cfg: cfg, logger: logger, accountLog: accountLog, core: core}, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
