package main

import "tensord/cmd/tensord-cli/cmd"

func main() {
	cmd.Execute()
}
