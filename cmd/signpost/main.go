package main

import "github.com/RobertWHurst/signpost/cmd/signpost/commands"

func main() {
	commands.Execute()
}
