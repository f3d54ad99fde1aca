package target

import (
	"fmt"

	"github.com/spf13/cobra"

	"artargets/cmd/client/cmd/types"
	"artargets/internal/app/client"
	"artargets/internal/domain/target"
)

var (
	editName    string
	editType    string
	editVersion int
)

var EditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Изменить название или тип таргета",
	Long: `Меняет только название и тип таргета.

Без флагов --name и --type значения запрашиваются интерактивно.
С --if-version изменение применяется, только если версия записи совпадает.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		home := app.Home(types.Terminal(cmd))

		flags := cmd.Flags()
		if flags.Changed("name") || flags.Changed("type") {
			preset := client.PresetEditor{}
			if flags.Changed("name") {
				preset.Name = &editName
			}
			if flags.Changed("type") {
				typ, err := target.ParseType(editType)
				if err != nil {
					return fmt.Errorf("неверный тип: %w", err)
				}
				preset.Type = &typ
			}
			home.WithEditor(preset)
		}

		t, err := find(cmd.Context(), home, args[0])
		if err != nil {
			return err
		}

		updated, err := home.Edit(cmd.Context(), t, ifVersion(cmd, editVersion))
		if err != nil {
			return fmt.Errorf("ошибка обновления: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", updated.ID, updated.Name, updated.Type.DisplayName())
		return nil
	},
}

func init() {
	EditCmd.Flags().StringVarP(&editName, "name", "n", "", "новое название")
	EditCmd.Flags().StringVarP(&editType, "type", "t", "", "новый тип (marker, nft, image)")
	EditCmd.Flags().IntVar(&editVersion, "if-version", 0, "применить, только если версия совпадает")
}
