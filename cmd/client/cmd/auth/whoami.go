package auth

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"artargets/cmd/client/cmd/types"
)

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Показать текущего пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		s := app.Sessions.Current()
		if s == nil {
			fmt.Fprintln(out, "Вы не вошли в систему")
			types.Terminal(cmd).ToLogin()
			return nil
		}

		fmt.Fprintf(out, "Email: %s\n", s.Email)
		fmt.Fprintf(out, "ID:    %s\n", s.UID)

		if exp, ok := s.ExpiresAt(); ok {
			status := "действует"
			if time.Now().After(exp) {
				status = "истёк, войдите заново"
			}
			fmt.Fprintf(out, "Токен: до %s (%s)\n", exp.Local().Format("2006-01-02 15:04"), status)
		}

		return nil
	},
}
