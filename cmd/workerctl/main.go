package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/srand/fastbuild/pkg/brokerage"
)

var rootCmd = &cobra.Command{
	Use:   "workerctl",
	Short: "Worker brokerage control command",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		viper.SetConfigName("workerctl.yaml")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/fastbuild/")
		viper.AddConfigPath("$HOME/.config/fastbuild")
		viper.AddConfigPath(".")
		viper.ReadInConfig()

		viper.SetEnvPrefix("fastbuild")
		viper.AutomaticEnv()
	},
}

func newBrokerage() *brokerage.Brokerage {
	config := brokerage.NewConfig(
		viper.GetString("coordinator"),
		viper.GetString("brokerage_path"))
	return brokerage.New(afero.NewOsFs(), config)
}

func main() {
	rootCmd.PersistentFlags().StringP("coordinator", "c", "", "Coordinator host or IP address")
	rootCmd.PersistentFlags().StringP("brokerage-path", "b", "", "Shared brokerage root directory")
	viper.BindPFlag("coordinator", rootCmd.PersistentFlags().Lookup("coordinator"))
	viper.BindPFlag("brokerage_path", rootCmd.PersistentFlags().Lookup("brokerage-path"))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
