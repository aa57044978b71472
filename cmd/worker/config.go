package main

import (
	"github.com/spf13/viper"
	"github.com/srand/fastbuild/pkg/log"
	"github.com/srand/fastbuild/pkg/utils"
)

type WorkerConfig struct {
	// Coordinator host or IP address. Takes precedence over the
	// brokerage path.
	Coordinator string `mapstructure:"coordinator"`

	// Shared brokerage root directory.
	BrokeragePath string `mapstructure:"brokerage_path"`
}

func LoadConfig() (*WorkerConfig, error) {
	config := &WorkerConfig{}

	err := utils.UnmarshalConfig(*viper.GetViper(), config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *WorkerConfig) Log() {
	log.Info("Worker configuration:")
	log.Infof("  coordinator = %s", c.Coordinator)
	log.Infof("  brokerage_path = %s", c.BrokeragePath)
}
