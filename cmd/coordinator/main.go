package main

import (
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/srand/fastbuild/pkg/coordinator"
	"github.com/srand/fastbuild/pkg/log"
	"github.com/srand/fastbuild/pkg/protocol"
	"github.com/srand/fastbuild/pkg/utils"
	"golang.org/x/sync/errgroup"
)

var config *Config

var rootCmd = &cobra.Command{
	Use:   "coordinator",
	Short: "FASTBuild worker coordinator service",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		viper.SetEnvPrefix("fastbuild")
		viper.AutomaticEnv()

		viper.SetConfigName("coordinator.yaml")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("/etc/fastbuild/")
		viper.AddConfigPath("$HOME/.config/fastbuild")
		viper.AddConfigPath(".")

		viper.ReadInConfig()

		if err := utils.UnmarshalConfig(*viper.GetViper(), &config); err != nil {
			log.Fatal(err)
		}

		config.Log()

		verbosity, err := cmd.Flags().GetCount("verbose")
		if err != nil {
			panic(err)
		}

		switch {
		case verbosity >= 2:
			log.SetLevel(log.TraceLevel)
		case verbosity >= 1:
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		registry := coordinator.NewRegistry()
		server := coordinator.NewServer(registry)

		var group errgroup.Group

		group.Go(func() error {
			return server.ListenAndServe(fmt.Sprintf(":%d", protocol.CoordinatorPort))
		})

		for _, uri := range config.ListenHttp {
			host, err := utils.ParseHttpUrl(uri)
			if err != nil {
				log.Fatal(err)
			}

			log.Info("Listening on http", host)

			r := echo.New()
			r.HideBanner = true
			r.Use(HttpLogger)
			coordinator.NewHttpHandler(registry, r)

			group.Go(func() error {
				return r.Start(host)
			})
		}

		utils.TerminateOnSignal(func() {
			server.Close()
		})

		if err := group.Wait(); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.Flags().StringSliceP("listen-http", "l", []string{"tcp://:8080"}, "Addresses to listen on for HTTP connections")
	rootCmd.Flags().CountP("verbose", "v", "Verbosity (repeatable)")

	viper.BindPFlag("listen_http", rootCmd.Flags().Lookup("listen-http"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
