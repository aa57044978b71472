package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/srand/fastbuild/pkg/brokerage"
	"github.com/srand/fastbuild/pkg/log"
	"github.com/srand/fastbuild/pkg/platform"
	"github.com/srand/fastbuild/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:   "worker",
	Short: "FASTBuild worker availability daemon",
	Run: func(cmd *cobra.Command, args []string) {
		verbosity, err := cmd.Flags().GetCount("verbose")
		if err != nil {
			log.Fatal(err)
		}
		switch {
		case verbosity >= 2:
			log.SetLevel(log.TraceLevel)
		case verbosity >= 1:
			log.SetLevel(log.DebugLevel)
		}

		config, err := LoadConfig()
		if err != nil {
			log.Fatal(err)
		}
		config.Log()

		node := platform.NewPlatformWithDefaults()
		log.Info("Properties:")
		for _, prop := range node.Properties {
			log.Infof("  %s=%s", prop.Key, prop.Value)
		}

		broker := brokerage.New(afero.NewOsFs(), brokerage.NewConfig(config.Coordinator, config.BrokeragePath))

		utils.TerminateOnSignal(func() {
			broker.SetAvailability(false)
			broker.Close()
		})

		for {
			broker.SetAvailability(true)
			time.Sleep(time.Second)
		}
	},
}

func main() {
	rootCmd.Flags().StringP("coordinator", "c", "", "Coordinator host or IP address")
	rootCmd.Flags().StringP("brokerage-path", "b", "", "Shared brokerage root directory")
	rootCmd.Flags().CountP("verbose", "v", "Verbosity (repeatable)")

	viper.BindPFlag("coordinator", rootCmd.Flags().Lookup("coordinator"))
	viper.BindPFlag("brokerage_path", rootCmd.Flags().Lookup("brokerage-path"))
	viper.SetEnvPrefix("fastbuild")
	viper.AutomaticEnv()

	viper.SetConfigName("worker.yaml")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/fastbuild/")
	viper.AddConfigPath("$HOME/.config/fastbuild")
	viper.AddConfigPath(".")
	viper.ReadInConfig()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
