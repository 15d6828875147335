package main

import "tensord/cmd/tensord/cmd"

func main() {
	cmd.Execute()
}
