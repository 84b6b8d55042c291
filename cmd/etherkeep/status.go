package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"
)

var status = cli.Command{
	Name:   "status",
	Usage:  "returns info about the status of the wallet",
	Action: getStatusAction,
}

func getStatusAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		walletStatus, err := svc.wallet.Status(c)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(walletStatus, "", "  ")
		if err != nil {
			return err
		}

		fmt.Println(string(out))
		return nil
	})
}
