package main

import "game-tracker/cmd"

func main() {
	cmd.Execute()
}
