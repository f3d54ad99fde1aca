package cmd

import (
	"artargets/cmd/client/cmd/auth"
	"artargets/cmd/client/cmd/target"
	"artargets/cmd/client/cmd/viewer"
)

func init() {
	// Команды аутентификации
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.WhoamiCmd)

	// Команды работы с таргетами
	rootCmd.AddCommand(target.TargetCmd)
	target.TargetCmd.AddCommand(target.ListCmd)
	target.TargetCmd.AddCommand(target.UploadCmd)
	target.TargetCmd.AddCommand(target.EditCmd)
	target.TargetCmd.AddCommand(target.DeleteCmd)

	rootCmd.AddCommand(viewer.ViewerCmd)
}
