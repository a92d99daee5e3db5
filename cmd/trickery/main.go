package main

import (
	"github.com/trickery-game/trickery/internal/cli"
)

func main() {
	cli.Execute()
}
