package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

var resetwallet = cli.Command{
	Name:  "reset",
	Usage: "erase the wallet, its accounts and every stored secret",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "yes",
			Usage: "skip the confirmation prompt",
		},
	},
	Action: resetWalletAction,
}

func resetWalletAction(ctx *cli.Context) error {
	if !ctx.Bool("yes") {
		fmt.Print(
			"This will erase the wallet and every stored secret. Funds are " +
				"only recoverable with the mnemonic. Continue? [y/N] ",
		)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if answer := strings.TrimSpace(strings.ToLower(line)); answer != "y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	return withServices(func(c context.Context, svc *services) error {
		if err := svc.wallet.Reset(c); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println("Wallet reset")
		return nil
	})
}
