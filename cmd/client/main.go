package main

import "artargets/cmd/client/cmd"

func main() {
	cmd.Execute()
}
