package asset

import (
	"fmt"
	"strings"
)

// StoreError - ошибка удалённого хранилища записей или объектов.
type StoreError struct {
	Op      string
	Status  int
	Code    string
	Message string
	Details string
	Hint    string
	Err     error
}

func (e *StoreError) Error() string {
	var b strings.Builder
	b.WriteString("store ")
	b.WriteString(e.Op)
	b.WriteString(": ")

	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		fmt.Fprintf(&b, "status %d", e.Status)
	}

	if e.Details != "" {
		b.WriteString(" (")
		b.WriteString(e.Details)
		b.WriteString(")")
	}
	return b.String()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// UploadError - неуспешная запись бинарного файла.
type UploadError struct {
	Status int
	Body   string
	Err    error
}

func (e *UploadError) Error() string {
	if e.Status == 0 && e.Err != nil {
		return fmt.Sprintf("upload failed: %v", e.Err)
	}
	return fmt.Sprintf("upload failed: status %d: %s", e.Status, e.Body)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// MalformedURLError - адрес не был выдан загрузчиком этого клиента.
type MalformedURLError struct {
	URL    string
	Reason string
}

func (e *MalformedURLError) Error() string {
	return fmt.Sprintf("malformed public url %q: %s", e.URL, e.Reason)
}
