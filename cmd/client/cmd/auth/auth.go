package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd - родительская команда для всех операций с сессией пользователя
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление пользователем",
	Long:  `Регистрация, вход, выход и просмотр текущей сессии.`,
}

var email string

func init() {
	AuthCmd.PersistentFlags().StringVarP(&email, "email", "e", "", "email (иначе будет запрошен)")
}
