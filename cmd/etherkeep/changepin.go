package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var changepin = cli.Command{
	Name:  "changepin",
	Usage: "change the pin protecting the wallet",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "current",
			Usage: "the pin currently in use",
		},
		&cli.StringFlag{
			Name:  "new",
			Usage: "the new 4 digit pin",
		},
	},
	Action: changePinAction,
}

func changePinAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		if err := svc.unlocker.ChangePin(
			c, ctx.String("current"), ctx.String("new"),
		); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println("Pin changed")
		return nil
	})
}
