package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/traveller-backend/internal/bootstrap"
	"github.com/traveller-backend/internal/config"
	"github.com/traveller-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// app - общее состояние команд, заполняется в PersistentPreRunE
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	services *bootstrap.Services

	envFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "placesctl",
		Short: "поиск мест с временем в пути из командной строки",
		Long: `
placesctl запускает тот же пайплайн, что и HTTP сервер: поиск мест через
Google Places, батчи по 25 мест в Distance Matrix API, фильтрация недостижимых.
Конфигурация берётся из окружения и файла .env.
`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "optional env file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override LOG_LEVEL")

	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newDetailsCmd(a))

	return root
}

func (a *app) init() error {
	cfg, err := config.LoadFile(a.envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	log, err := logger.New(logger.Options{Name: "placesctl", Level: cfg.Log.Level, Output: "stderr"})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	services, err := bootstrap.New(cfg, log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.services = services
	return nil
}

func (a *app) close() {
	if a.services != nil {
		a.services.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
