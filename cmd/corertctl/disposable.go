package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nyxlang/corert/disposable"
)

func init() {
	rootCmd.AddCommand(newDisposableCmd())
}

func newDisposableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disposable",
		Short: "Demonstrate a recovery unwinding a disposable registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDisposable()
		},
	}
	return cmd
}

func runDisposable() error {
	var reg disposable.Registry

	reg.Secure(disposable.New(func() { printInfo("released: outer resource\n") }))

	rec := disposable.NewRecovery(&reg)

	reg.Secure(disposable.New(func() { printInfo("released: inner resource A\n") }))
	reg.Secure(disposable.New(func() { printInfo("released: inner resource B\n") }))

	payload, panicked := rec.Try(func() {
		printVerbose("about to abort inner work\n")
		rec.Panic(fmt.Errorf("simulated failure"))
	})

	if panicked {
		printInfo("recovered: %v\n", payload)
	}
	printInfo("registry length after recovery: %d\n", reg.Len())
	return nil
}
