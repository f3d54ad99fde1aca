package target

import (
	"fmt"

	"github.com/spf13/cobra"

	"artargets/cmd/client/cmd/types"
)

var (
	assumeYes     bool
	deleteVersion int
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить таргет",
	Long: `Удаляет файл таргета из хранилища, затем саму запись.

Ошибка удаления файла не мешает удалению записи.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		home := app.Home(types.Terminal(cmd).AssumeYes(assumeYes))

		t, err := find(cmd.Context(), home, args[0])
		if err != nil {
			return err
		}

		if err := home.Delete(cmd.Context(), t, ifVersion(cmd, deleteVersion)); err != nil {
			return fmt.Errorf("ошибка удаления: %w", err)
		}

		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "не спрашивать подтверждение")
	DeleteCmd.Flags().IntVar(&deleteVersion, "if-version", 0, "удалить, только если версия совпадает")
}
