package main

import "groupme/internal/cmd"

func main() {
	cmd.Run()
}
