package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var workerListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List reachable workers",
	Run: func(cmd *cobra.Command, args []string) {
		broker := newBrokerage()

		workers := broker.FindWorkers()

		workerCount := len(workers)
		workerPad := fmt.Sprint(len(fmt.Sprint(workerCount)))

		for index, worker := range workers {
			fmt.Printf("%"+workerPad+"d: %s\n", index+1, worker)
		}
	},
}

func init() {
	rootCmd.AddCommand(workerListCmd)
}
