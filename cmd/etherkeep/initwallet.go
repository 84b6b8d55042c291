package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/etherkeep/etherkeep-daemon/pkg/wallet"
)

var initwallet = cli.Command{
	Name:  "init",
	Usage: "create a new wallet protected by the given pin",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pin",
			Usage: "the 4 digit pin protecting the wallet",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "the name of the first account",
			Value: "Account 1",
		},
	},
	Action: initWalletAction,
}

func initWalletAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		mnemonic, err := svc.wallet.GenSeed(c)
		if err != nil {
			return err
		}

		account, err := svc.wallet.InitWallet(
			c, mnemonic, ctx.String("pin"), ctx.String("name"),
		)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println("Write down the recovery phrase and store it somewhere safe:")
		fmt.Println()
		for i, word := range mnemonic {
			fmt.Printf("%2d. %s\n", i+1, word)
		}
		fmt.Println()
		fmt.Printf("Wallet created, first account at %s\n", account.Address)
		return nil
	})
}

var restorewallet = cli.Command{
	Name:  "restore",
	Usage: "restore a wallet from an existing mnemonic",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "mnemonic",
			Usage: "the recovery phrase, words separated by spaces",
		},
		&cli.StringFlag{
			Name:  "pin",
			Usage: "the 4 digit pin protecting the wallet",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "the name of the first account",
			Value: "Account 1",
		},
	},
	Action: restoreWalletAction,
}

func restoreWalletAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		mnemonic := wallet.SanitizeMnemonic(ctx.String("mnemonic"))

		account, err := svc.wallet.InitWallet(
			c, mnemonic, ctx.String("pin"), ctx.String("name"),
		)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Wallet restored, first account at %s\n", account.Address)
		return nil
	})
}
