package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "etherkeep CLI"
	app.Usage = "Command line interface for the etherkeep wallet"
	app.Commands = append(
		app.Commands,
		&genseed,
		&initwallet,
		&restorewallet,
		&unlockwallet,
		&lockwallet,
		&status,
		&changepin,
		&biometrics,
		&account,
		&address,
		&balance,
		&resetwallet,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[etherkeep] %v\n", err)
	os.Exit(1)
}
