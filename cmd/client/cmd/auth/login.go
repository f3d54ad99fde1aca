package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"artargets/cmd/client/cmd/types"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему",
	Long: `Аутентификация по email и паролю.

После входа сессия сохраняется локально и используется остальными командами.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		t := types.Terminal(cmd)

		login := email
		if login == "" {
			if login, err = t.ReadLine("Email: "); err != nil {
				return err
			}
		}

		password, err := types.ReadPassword(cmd, t, "Пароль: ")
		if err != nil {
			return err
		}

		if _, err := app.Auth(t).Login(cmd.Context(), login, password); err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		return nil
	},
}
