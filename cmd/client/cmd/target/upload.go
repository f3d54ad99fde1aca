package target

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"artargets/cmd/client/cmd/types"
	"artargets/internal/app/client"
	"artargets/internal/domain/asset"
)

var contentType string

var UploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Загрузить файл и создать таргет",
	Long: `Загружает файл в хранилище и создаёт по нему таргет.

Изображения (image/*) становятся таргетами типа image, остальные файлы - marker.
Тип содержимого определяется по расширению, затем по первым байтам файла.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("ошибка открытия файла: %w", err)
		}
		defer f.Close()

		file, err := describe(f, contentType)
		if err != nil {
			return err
		}

		home := app.Home(types.Terminal(cmd))
		home.SelectFile(file)

		saved, err := home.Upload(cmd.Context())
		if err != nil {
			if errors.Is(err, client.ErrNotLoggedIn) {
				return fmt.Errorf("нет активной сессии: %w", err)
			}
			return fmt.Errorf("ошибка загрузки: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:  %s\n", saved.ID)
		fmt.Fprintf(out, "Тип: %s\n", saved.Type.DisplayName())
		fmt.Fprintf(out, "URL: %s\n", saved.ContentURL)
		return nil
	},
}

// describe собирает asset.File: имя, размер и тип содержимого.
func describe(f *os.File, override string) (asset.File, error) {
	info, err := f.Stat()
	if err != nil {
		return asset.File{}, fmt.Errorf("ошибка чтения файла: %w", err)
	}
	if info.IsDir() {
		return asset.File{}, fmt.Errorf("%s - это директория", f.Name())
	}

	ct := override
	if ct == "" {
		ct = mime.TypeByExtension(filepath.Ext(f.Name()))
	}
	if ct == "" {
		head := make([]byte, 512)
		n, err := io.ReadFull(f, head)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
			return asset.File{}, fmt.Errorf("ошибка чтения файла: %w", err)
		}
		ct = http.DetectContentType(head[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return asset.File{}, fmt.Errorf("ошибка чтения файла: %w", err)
		}
	}

	return asset.File{
		Name:        filepath.Base(f.Name()),
		ContentType: ct,
		Size:        info.Size(),
		Body:        f,
	}, nil
}

func init() {
	UploadCmd.Flags().StringVar(&contentType, "content-type", "", "тип содержимого (по умолчанию определяется автоматически)")
}
