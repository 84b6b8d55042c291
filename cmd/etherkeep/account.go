package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var account = cli.Command{
	Name:  "account",
	Usage: "manage the accounts of the wallet",
	Subcommands: []*cli.Command{
		&accountList,
		&accountNew,
		&accountImport,
		&accountRename,
		&accountDelete,
		&accountSwitch,
	},
}

var accountList = cli.Command{
	Name:   "list",
	Usage:  "list every account of the wallet",
	Action: accountListAction,
}

func accountListAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		accounts, err := svc.account.ListAccounts(c)
		if err != nil {
			return err
		}

		fmt.Println()
		for _, a := range accounts {
			marker := " "
			if a.Active {
				marker = "*"
			}
			kind := fmt.Sprintf("m/44'/60'/0'/0/%d", a.DerivationIndex)
			if !a.IsDerived() {
				kind = "imported"
			}
			fmt.Printf("%s %s  %s  %s  (%s)\n", marker, a.ID, a.Address, a.Name, kind)
		}
		return nil
	})
}

var accountNew = cli.Command{
	Name:  "new",
	Usage: "derive a new account from the wallet mnemonic",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pin",
			Usage: "the 4 digit pin protecting the wallet",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "the name of the new account",
		},
	},
	Action: accountNewAction,
}

func accountNewAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		if _, err := svc.unlocker.UnlockWithPin(c, ctx.String("pin")); err != nil {
			return err
		}

		a, err := svc.account.CreateAccount(c, ctx.String("name"))
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Account %s created at %s\n", a.Name, a.Address)
		return nil
	})
}

var accountImport = cli.Command{
	Name:  "import",
	Usage: "import an account from a raw private key",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pin",
			Usage: "the 4 digit pin protecting the wallet",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "the name of the imported account",
		},
		&cli.StringFlag{
			Name:  "privkey",
			Usage: "the 0x prefixed hex private key to import",
		},
	},
	Action: accountImportAction,
}

func accountImportAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		if _, err := svc.unlocker.UnlockWithPin(c, ctx.String("pin")); err != nil {
			return err
		}

		a, err := svc.account.ImportAccount(
			c, ctx.String("name"), ctx.String("privkey"),
		)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Account %s imported at %s\n", a.Name, a.Address)
		return nil
	})
}

var accountRename = cli.Command{
	Name:  "rename",
	Usage: "rename an account",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "id",
			Usage: "the id of the account to rename",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "the new name",
		},
	},
	Action: accountRenameAction,
}

func accountRenameAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		if err := svc.account.RenameAccount(
			c, ctx.String("id"), ctx.String("name"),
		); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println("Account renamed")
		return nil
	})
}

var accountDelete = cli.Command{
	Name:  "delete",
	Usage: "delete an account from the wallet",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "id",
			Usage: "the id of the account to delete",
		},
		&cli.StringFlag{
			Name: "pin",
			Usage: "the 4 digit pin protecting the wallet, required to " +
				"delete imported accounts",
		},
	},
	Action: accountDeleteAction,
}

func accountDeleteAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		if pin := ctx.String("pin"); pin != "" {
			if _, err := svc.unlocker.UnlockWithPin(c, pin); err != nil {
				return err
			}
		}

		if err := svc.account.DeleteAccount(c, ctx.String("id")); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println("Account deleted")
		return nil
	})
}

var accountSwitch = cli.Command{
	Name:  "switch",
	Usage: "make an account the active one",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "id",
			Usage: "the id of the account to activate",
		},
	},
	Action: accountSwitchAction,
}

func accountSwitchAction(ctx *cli.Context) error {
	return withServices(func(c context.Context, svc *services) error {
		a, err := svc.account.SwitchAccount(c, ctx.String("id"))
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Active account is now %s at %s\n", a.Name, a.Address)
		return nil
	})
}
