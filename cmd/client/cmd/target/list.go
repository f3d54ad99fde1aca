package target

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"artargets/cmd/client/cmd/types"
	"artargets/internal/app/client"
	"artargets/internal/domain/target"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список таргетов",
	Long:  `Просмотр всех таргетов текущего пользователя.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		home := app.Home(types.Terminal(cmd))
		if err := home.Enter(cmd.Context()); err != nil {
			if errors.Is(err, client.ErrNotLoggedIn) {
				return fmt.Errorf("нет активной сессии: %w", err)
			}
			return err
		}

		out := cmd.OutOrStdout()
		targets := home.Targets()

		switch listFormat {
		case "json":
			return printTargetsJSON(out, targets)
		case "table":
			return printTargetsTable(out, targets)
		case "csv":
			return printTargetsCSV(out, targets)
		default:
			return printTargetsSimple(out, targets)
		}
	},
}

func printTargetsSimple(w io.Writer, targets []target.Target) error {
	if len(targets) == 0 {
		fmt.Fprintln(w, "Таргеты не найдены")
		return nil
	}

	fmt.Fprintf(w, "Найдено таргетов: %d\n\n", len(targets))

	for i, t := range targets {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, t.Name, t.Type.DisplayName())
		fmt.Fprintf(w, "   ID: %s\n", t.ID)
		fmt.Fprintf(w, "   URL: %s\n", t.ContentURL)
		fmt.Fprintln(w)
	}

	return nil
}

func printTargetsTable(w io.Writer, targets []target.Target) error {
	if len(targets) == 0 {
		fmt.Fprintln(w, "Таргеты не найдены")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tНазвание\tТип\tВерсия\tURL\t\n")
	fmt.Fprintf(tw, "---\t---\t---\t---\t---\t\n")

	for _, t := range targets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t\n",
			t.ID,
			truncate(t.Name, 30),
			string(t.Type),
			t.Version,
			truncate(t.ContentURL, 60),
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nВсего таргетов: %d\n", len(targets))
	return nil
}

func printTargetsJSON(w io.Writer, targets []target.Target) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(targets)
}

func printTargetsCSV(w io.Writer, targets []target.Target) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Name", "Type", "Version", "ContentURL"}); err != nil {
		return err
	}

	for _, t := range targets {
		err := cw.Write([]string{
			t.ID,
			t.Name,
			string(t.Type),
			strconv.Itoa(t.Version),
			t.ContentURL,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "формат вывода (simple, table, json, csv)")
}
