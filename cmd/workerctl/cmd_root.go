package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var brokerageRootCmd = &cobra.Command{
	Use:   "root",
	Short: "Print the effective brokerage root directory",
	Run: func(cmd *cobra.Command, args []string) {
		broker := newBrokerage()
		fmt.Println(broker.Root())
	},
}

func init() {
	rootCmd.AddCommand(brokerageRootCmd)
}
