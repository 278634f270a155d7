package main

import "github.com/KaramelBytes/saleslens-cli/cmd"

func main() {
	cmd.Execute()
}
