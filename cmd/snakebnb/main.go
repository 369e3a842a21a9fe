package main

import (
	"github.com/bornholm/snakebnb/internal/command"
	"github.com/bornholm/snakebnb/internal/command/account"
	"github.com/bornholm/snakebnb/internal/command/guest"
	"github.com/bornholm/snakebnb/internal/command/host"
)

func main() {
	command.Main(
		"snakebnb",
		"Board your snakes with loving caretakers",
		account.Root(),
		host.Root(),
		guest.Root(),
	)
}
