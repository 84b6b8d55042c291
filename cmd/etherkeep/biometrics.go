package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var biometrics = cli.Command{
	Name:  "biometrics",
	Usage: "enable or disable biometric unlock",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pin",
			Usage: "the 4 digit pin protecting the wallet",
		},
		&cli.BoolFlag{
			Name:  "disable",
			Usage: "disable biometric unlock instead of enabling it",
		},
	},
	Action: biometricsAction,
}

func biometricsAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		enable := !ctx.Bool("disable")
		if err := svc.unlocker.SetBiometricsEnabled(
			c, ctx.String("pin"), enable,
		); err != nil {
			return err
		}

		fmt.Println()
		if enable {
			fmt.Println("Biometric unlock enabled")
		} else {
			fmt.Println("Biometric unlock disabled")
		}
		return nil
	})
}
