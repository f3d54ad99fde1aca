package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"artargets/cmd/client/cmd/types"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Регистрация нового пользователя.

Email и пароль проверяются до обращения к серверу: пароль не короче 6 символов.
После успешной регистрации сессия сохраняется локально.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		t := types.Terminal(cmd)
		fmt.Fprintln(cmd.OutOrStdout(), "=== Регистрация нового пользователя ===")

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
		confirm, err := types.ReadPassword(cmd, t, "Повторите пароль: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("пароли не совпадают")
		}

		if _, err := app.Auth(t).Register(cmd.Context(), login, password); err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		return nil
	},
}
