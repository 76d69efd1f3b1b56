package main

import "flowshow/cmd/flowshow-cli/cmd"

func main() {
	cmd.Execute()
}
