package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	"artargets/cmd/client/cmd/types"
	"artargets/internal/app/client"
	"artargets/internal/app/client/config"
	"artargets/internal/utils/logger"
)

var (
	cfgFile     string
	supabaseURL string
	debug       bool
	app         *client.App
)

var rootCmd = &cobra.Command{
	Use:   "artargets",
	Short: "artargets - менеджер AR-таргетов",
	Long: `artargets хранит изображения и маркеры для AR-сцен в облачном хранилище.

Войдите в систему, загрузите файл, и он появится в списке таргетов
и в локальном AR-просмотре.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if app != nil {
		_ = app.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if debug {
		cfg.Env = config.EnvLocal
	}

	log := logger.New(cfg.Env)
	if !debug && cfg.IsLocal() {
		// отладочный вывод не должен мешать результатам команд
		log = logger.WithMinLevel(log, slog.LevelWarn)
	}

	app, err = client.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	err := app.Close()
	app = nil
	return err
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Ищем конфиг в стандартных местах
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		viper.AddConfigPath(filepath.Join(home, ".artargets"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Конфиг не найден, используем окружение и значения по умолчанию
	}

	return config.Load()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный вывод")
	rootCmd.PersistentFlags().StringVar(&supabaseURL, "url", "", "базовый URL хостинга (SUPABASE_URL)")

	// флаг должен быть виден config.Load до валидации
	_ = viper.BindPFlag("SUPABASE_URL", rootCmd.PersistentFlags().Lookup("url"))
}
