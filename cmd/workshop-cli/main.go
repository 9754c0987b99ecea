package main

import "workshop/cmd/workshop-cli/cmd"

func main() {
	cmd.Execute()
}
