package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var genseed = cli.Command{
	Name:   "genseed",
	Usage:  "generate a mnemonic seed",
	Action: genSeedAction,
}

func genSeedAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		mnemonic, err := svc.wallet.GenSeed(c)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(strings.Join(mnemonic, " "))
		return nil
	})
}
