package main

import (
	"github.com/srand/fastbuild/pkg/log"
)

type Config struct {
	// Addresses to listen on for HTTP.
	ListenHttp []string `mapstructure:"listen_http"`
}

func (c *Config) Log() {
	log.Info("Coordinator configuration:")
	log.Infof("  HTTP listen addresses: %v", c.ListenHttp)
}
