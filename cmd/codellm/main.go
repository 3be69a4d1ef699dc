package main

import "github.com/kss0704/codellm/internal/commands"

func main() {
	commands.Execute()
}
