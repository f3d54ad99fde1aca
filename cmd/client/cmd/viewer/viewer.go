package viewer

import (
	"fmt"

	"github.com/spf13/cobra"

	"artargets/cmd/client/cmd/types"
	viewerapp "artargets/internal/app/viewer"
)

var addr string

var ViewerCmd = &cobra.Command{
	Use:   "viewer",
	Short: "Запустить локальный AR-просмотр",
	Long: `Поднимает локальный HTTP API с таргетами текущего пользователя.

GET /api/v1/targets отдаёт список, ?refresh=true перечитывает его из хранилища.
Остановка - Ctrl+C.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		listen := addr
		if listen == "" {
			listen = app.Config().ViewerAddress
		}

		v := app.Viewer()
		if err := v.Init(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка загрузки таргетов: %w", err)
		}
		if v.Session() == nil {
			types.Terminal(cmd).ToLogin()
		}

		fmt.Fprintf(cmd.OutOrStdout(), "AR-просмотр: http://%s/api/v1/targets\n", listen)

		srv := viewerapp.NewServer(listen, v, app.Sessions, app.Logger())
		if err := srv.Run(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка сервера просмотра: %w", err)
		}

		return nil
	},
}

func init() {
	ViewerCmd.Flags().StringVar(&addr, "addr", "", "адрес для прослушивания (VIEWER_ADDRESS)")
}
