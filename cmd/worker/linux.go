//go:build linux

package main

import (
	"github.com/srand/fastbuild/pkg/log"
	"github.com/srand/fastbuild/pkg/utils"
)

func init() {
	log.Info("Detected Linux")

	// Disable transparent huge pages to workaround memory leaks
	utils.DisableTHP()
}
