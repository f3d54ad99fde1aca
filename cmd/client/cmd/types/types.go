package types

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"artargets/internal/app/client"
)

type contextKey string

// ClientAppKey - ключ, под которым корневая команда кладёт *client.App в контекст.
const ClientAppKey contextKey = "app"

// App достаёт приложение из контекста команды.
func App(ctx context.Context) (*client.App, error) {
	app, ok := ctx.Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

func Terminal(cmd *cobra.Command) *client.Terminal {
	return client.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
}

// ReadPassword читает пароль без эха, если stdin - терминал, иначе обычной строкой.
func ReadPassword(cmd *cobra.Command, t *client.Terminal, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if cmd.InOrStdin() != os.Stdin || !term.IsTerminal(fd) {
		return t.ReadLine(prompt)
	}

	fmt.Fprint(cmd.OutOrStdout(), prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return string(password), nil
}
