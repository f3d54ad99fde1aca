package target

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"artargets/internal/app/client"
	"artargets/internal/domain/target"
)

// TargetCmd - родительская команда для всех операций с таргетами
var TargetCmd = &cobra.Command{
	Use:     "target",
	Aliases: []string{"targets"},
	Short:   "Управление AR-таргетами",
	Long:    `Загрузка, просмотр, редактирование и удаление таргетов.`,
}

// find открывает главный экран и ищет таргет в загруженном списке.
func find(ctx context.Context, home *client.Home, id string) (target.Target, error) {
	if err := home.Enter(ctx); err != nil {
		if errors.Is(err, client.ErrNotLoggedIn) {
			return target.Target{}, fmt.Errorf("нет активной сессии: %w", err)
		}
		return target.Target{}, err
	}

	t, ok := home.Find(id)
	if !ok {
		return target.Target{}, fmt.Errorf("таргет %s не найден: %w", id, target.ErrNotFound)
	}
	return t, nil
}

// ifVersion возвращает значение флага --if-version, только если он задан.
func ifVersion(cmd *cobra.Command, v int) *int {
	if !cmd.Flags().Changed("if-version") {
		return nil
	}
	return &v
}
