package main

import "worknest_backend/internals/commands"

func main() {
	commands.Execute()
}
