package target

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeMarker Type = "marker"
	TypeNFT    Type = "nft"
	TypeImage  Type = "image"
)

// ParseType приводит пользовательский ввод к Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Type) Validate() error {
	switch t {
	case TypeMarker, TypeNFT, TypeImage:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidType, string(t))
}

func (t Type) String() string {
	return string(t)
}

// DisplayName возвращает человекочитаемое название типа.
func (t Type) DisplayName() string {
	switch t {
	case TypeMarker:
		return "Маркер"
	case TypeNFT:
		return "NFT-маркер"
	case TypeImage:
		return "Изображение"
	default:
		return "Неизвестный тип"
	}
}
