package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"artargets/cmd/client/cmd/types"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	Long: `Завершает сессию на сервере и удаляет локальную.

Если сервер недоступен, локальная сессия сохраняется.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		t := types.Terminal(cmd)
		if err := app.Home(t).Logout(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка выхода: %w", err)
		}

		t.Success("Вы вышли из системы")
		return nil
	},
}
