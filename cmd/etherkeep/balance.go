package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/etherkeep/etherkeep-daemon/internal/core/domain"
)

var address = cli.Command{
	Name:   "address",
	Usage:  "show the address of the active account",
	Action: addressAction,
}

func addressAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		active, err := svc.account.GetActiveAccount(c)
		if err != nil {
			return err
		}
		if active == nil {
			return domain.ErrWalletNotInitialized
		}

		fmt.Println()
		fmt.Println(active.Address)
		return nil
	})
}

var balance = cli.Command{
	Name:  "balance",
	Usage: "show the balance of the active account, or of every account",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "all",
			Usage: "show the balance of every account",
		},
	},
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		if ctx.Bool("all") {
			balances, err := svc.account.Balances(c)
			if err != nil {
				return err
			}

			fmt.Println()
			for addr, wei := range balances {
				fmt.Printf("%s  %s ETH\n", addr, formatEther(wei))
			}
			return nil
		}

		active, err := svc.account.GetActiveAccount(c)
		if err != nil {
			return err
		}
		if active == nil {
			return domain.ErrWalletNotInitialized
		}

		wei, err := svc.chainClient.BalanceOf(c, active.Address)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("%s  %s ETH\n", active.Address, formatEther(wei))
		return nil
	})
}

func formatEther(wei *big.Int) string {
	return decimal.NewFromBigInt(wei, -18).String()
}
