package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"artargets/internal/domain/target"
)

// Terminal - реализация UI для командной строки.
type Terminal struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool

	okColor   *color.Color
	failColor *color.Color
	hintColor *color.Color
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:        bufio.NewReader(in),
		out:       out,
		okColor:   color.New(color.FgGreen),
		failColor: color.New(color.FgRed),
		hintColor: color.New(color.FgCyan),
	}
}

// AssumeYes отвечает "да" на все подтверждения (флаг --yes).
func (t *Terminal) AssumeYes(v bool) *Terminal {
	t.assumeYes = v
	return t
}

func (t *Terminal) ToLogin() {
	t.hintColor.Fprintln(t.out, "Войдите в систему: artargets auth login")
}

func (t *Terminal) ToHome() {
	t.hintColor.Fprintln(t.out, "Ваши таргеты: artargets target list")
}

func (t *Terminal) Success(msg string) {
	t.okColor.Fprintf(t.out, "✓ %s\n", msg)
}

// Error печатает только сообщение, подробности выводит вызывающая команда.
func (t *Terminal) Error(msg string, _ error) {
	t.failColor.Fprintf(t.out, "✗ %s\n", msg)
}

func (t *Terminal) Confirm(prompt string) (bool, error) {
	if t.assumeYes {
		return true, nil
	}

	answer, err := t.ReadLine(prompt + " [y/N]: ")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes", "д", "да":
		return true, nil
	}
	return false, nil
}

// Edit спрашивает имя и тип. Пустой ввод сохраняет текущее значение.
func (t *Terminal) Edit(current EditForm) (EditForm, bool, error) {
	name, err := t.ReadLine(fmt.Sprintf("Название [%s]: ", current.Name))
	if err != nil {
		return EditForm{}, false, err
	}
	if name != "" {
		current.Name = name
	}

	raw, err := t.ReadLine(fmt.Sprintf("Тип (marker, nft, image) [%s]: ", current.Type))
	if err != nil {
		return EditForm{}, false, err
	}
	if raw != "" {
		typ, err := target.ParseType(raw)
		if err != nil {
			return EditForm{}, false, err
		}
		current.Type = typ
	}

	return current, true, nil
}

// ReadLine печатает приглашение и читает строку без перевода строки.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)

	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}

	return strings.TrimSpace(line), nil
}
