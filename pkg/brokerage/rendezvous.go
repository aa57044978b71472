package brokerage

import (
	"os"

	"github.com/spf13/afero"
	"github.com/srand/fastbuild/pkg/log"
)

// The filesystem rendezvous. Each available worker owns a zero-byte
// sentinel file named after its host identity in the versioned
// brokerage directory; clients enumerate the directory.

func (b *Brokerage) sentinelExists() bool {
	exists, _ := afero.Exists(b.fs, b.sentinelPath)
	return exists
}

func (b *Brokerage) createSentinel() {
	if b.sentinelExists() {
		return
	}

	if err := b.fs.MkdirAll(b.config.Root(), 0777); err != nil {
		log.Error("Failed to create brokerage directory:", err)
		return
	}

	file, err := b.fs.Create(b.sentinelPath)
	if err != nil {
		log.Error("Failed to create brokerage file:", err)
		return
	}
	file.Close()

	log.Debug("Created brokerage file:", b.sentinelPath)
}

func (b *Brokerage) removeSentinel() {
	if err := b.fs.Remove(b.sentinelPath); err != nil && !os.IsNotExist(err) {
		log.Error("Failed to remove brokerage file:", err)
		return
	}

	log.Debug("Removed brokerage file:", b.sentinelPath)
}

// enumerateWorkers lists the rendezvous directory, non-recursively.
// Each entry name is a worker identity. A missing directory is
// returned as the ReadDir error; FindWorkers reports it, like an empty
// directory, as a warning and no workers.
func (b *Brokerage) enumerateWorkers() ([]string, error) {
	entries, err := afero.ReadDir(b.fs, b.config.Root())
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}
