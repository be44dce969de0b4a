package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bindings"
	app.Usage = "Account Bindings contract operator tool"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "Path to the YAML configuration file",
			EnvVar: "BINDINGS_CONFIG",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "deploy",
			Usage:     "Deploy compiled contract",
			ArgsUsage: "<artifacts-dir>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "owner", Usage: "Initial owner (address or LE hash), wallet account if empty"},
			},
			Action: deployContract,
		},
		{
			Name:  "owner",
			Usage: "Contract ownership",
			Subcommands: []cli.Command{
				{Name: "get", Usage: "Print current owner", Action: getOwner},
				{Name: "set", Usage: "Transfer ownership", ArgsUsage: "<account>", Action: setOwner},
				{Name: "init", Usage: "Set owner of the contract deployed without one (signed by the wallet account, which must be the owner)", ArgsUsage: "<account>", Action: initOwner},
			},
		},
		{
			Name:  "manager",
			Usage: "Manager set",
			Subcommands: []cli.Command{
				{Name: "add", Usage: "Add manager", ArgsUsage: "<account>", Action: addManager},
				{Name: "remove", Usage: "Remove manager", ArgsUsage: "<account>", Action: removeManager},
				{Name: "check", Usage: "Check whether account is a manager", ArgsUsage: "<account>", Action: checkManager},
				{Name: "list", Usage: "List managers", Action: listManagers},
			},
		},
		{
			Name:      "propose",
			Usage:     "Propose binding of the wallet account to the handle (pays the proposal fee)",
			ArgsUsage: "<platform> <handle>",
			Action:    proposeBinding,
		},
		{
			Name:      "cancel",
			Usage:     "Cancel binding proposal of the wallet account",
			ArgsUsage: "<platform>",
			Action:    cancelProposal,
		},
		{
			Name:      "accept",
			Usage:     "Accept verified binding proposal",
			ArgsUsage: "<account> <platform> <verification-timestamp>",
			Action:    acceptBinding,
		},
		{
			Name:      "proposal",
			Usage:     "Print current binding proposal",
			ArgsUsage: "<account> <platform>",
			Action:    getProposal,
		},
		{
			Name:      "handle",
			Usage:     "Print handle bound to the account",
			ArgsUsage: "<account> <platform>",
			Action:    getHandle,
		},
		{
			Name:      "lookup",
			Usage:     "Print account bound to the handle",
			ArgsUsage: "<platform> <handle>",
			Action:    lookupAccount,
		},
		{
			Name:      "account",
			Usage:     "Print all handles bound to the account",
			ArgsUsage: "<account>",
			Action:    getAccount,
		},
		{
			Name:   "accounts",
			Usage:  "List all accounts with confirmed bindings and their handles",
			Action: listAccounts,
		},
		{
			Name:      "withdraw",
			Usage:     "Withdraw collected proposal fees",
			ArgsUsage: "<account> <amount>",
			Action:    withdraw,
		},
	}
	return app
}
