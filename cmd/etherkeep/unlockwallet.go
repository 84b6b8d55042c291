package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var unlockwallet = cli.Command{
	Name:  "unlock",
	Usage: "verify the pin and unlock the wallet",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pin",
			Usage: "the 4 digit pin protecting the wallet",
		},
	},
	Action: unlockWalletAction,
}

func unlockWalletAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		signer, err := svc.unlocker.UnlockWithPin(c, ctx.String("pin"))
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Wallet is unlocked, active account at %s\n", signer.Address())
		return nil
	})
}

var lockwallet = cli.Command{
	Name:   "lock",
	Usage:  "lock the wallet",
	Action: lockWalletAction,
}

func lockWalletAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		svc.unlocker.Lock(c)

		fmt.Println()
		fmt.Println("Wallet is locked")
		return nil
	})
}
