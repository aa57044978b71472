package brokerage

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
	"github.com/srand/fastbuild/pkg/protocol"
)

type Mode int

const (
	// Brokerage is disabled. All operations are no-ops.
	ModeNone Mode = iota

	// Workers rendezvous through sentinel files in a shared directory.
	ModeFilesystem

	// Workers and clients talk to a central coordinator over TCP.
	ModeCoordinator
)

func (m Mode) String() string {
	switch m {
	case ModeFilesystem:
		return "filesystem"
	case ModeCoordinator:
		return "coordinator"
	default:
		return "none"
	}
}

// Config selects exactly one brokerage backend.
type Config struct {
	mode    Mode
	root    string
	address string
	port    int
}

// NewConfig resolves the backend from a coordinator address and a
// brokerage root path. A non-empty coordinator address wins. With
// neither, the brokerage is disabled.
func NewConfig(coordinator, root string) *Config {
	if coordinator != "" {
		return NewCoordinatorConfig(coordinator, protocol.CoordinatorPort)
	}

	if root != "" {
		return NewFilesystemConfig(root)
	}

	return &Config{mode: ModeNone}
}

// NewConfigFromEnv resolves the backend from the environment:
// FASTBUILD_COORDINATOR selects the coordinator backend,
// otherwise FASTBUILD_BROKERAGE_PATH selects the filesystem backend.
func NewConfigFromEnv() *Config {
	v := viper.New()
	v.SetEnvPrefix("fastbuild")
	v.AutomaticEnv()

	return NewConfig(v.GetString("coordinator"), v.GetString("brokerage_path"))
}

func NewCoordinatorConfig(address string, port int) *Config {
	return &Config{
		mode:    ModeCoordinator,
		address: address,
		port:    port,
	}
}

func NewFilesystemConfig(root string) *Config {
	return &Config{
		mode: ModeFilesystem,
		root: rendezvousRoot(root),
	}
}

// The versioned rendezvous directory below the user-provided root,
// terminated with the native separator:
//
//	<root>/main/<protocol-version>.<os-tag>/
//
// The protocol version in the path partitions incompatible fleets
// without manual cleanup.
func rendezvousRoot(root string) string {
	dir := filepath.Join(root, "main", fmt.Sprintf("%d.%s", protocol.ProtocolVersion, osTag()))
	return dir + string(filepath.Separator)
}

func osTag() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "darwin":
		return "osx"
	default:
		return "linux"
	}
}

func (c *Config) Mode() Mode {
	return c.mode
}

// Root returns the effective rendezvous directory. Empty unless the
// filesystem backend is selected.
func (c *Config) Root() string {
	return c.root
}

// Address returns the coordinator host or IP. Empty unless the
// coordinator backend is selected.
func (c *Config) Address() string {
	return c.address
}

func (c *Config) Port() int {
	return c.port
}
