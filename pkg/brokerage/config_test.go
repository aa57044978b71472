package brokerage

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/srand/fastbuild/pkg/protocol"
	"github.com/stretchr/testify/assert"
)

func TestConfigCoordinatorBeatsFilesystem(t *testing.T) {
	config := NewConfig("10.0.0.1", "/srv/fb")

	assert.Equal(t, ModeCoordinator, config.Mode())
	assert.Equal(t, "10.0.0.1", config.Address())
	assert.Equal(t, protocol.CoordinatorPort, config.Port())
	assert.Empty(t, config.Root())
}

func TestConfigFilesystem(t *testing.T) {
	config := NewConfig("", "/srv/fb")

	assert.Equal(t, ModeFilesystem, config.Mode())
	assert.Empty(t, config.Address())

	expected := filepath.Join("/srv/fb", "main",
		fmt.Sprintf("%d.%s", protocol.ProtocolVersion, osTag())) + string(filepath.Separator)
	assert.Equal(t, expected, config.Root())
}

func TestConfigNone(t *testing.T) {
	config := NewConfig("", "")

	assert.Equal(t, ModeNone, config.Mode())
	assert.Empty(t, config.Root())
	assert.Empty(t, config.Address())
}

func TestConfigFromEnvCoordinator(t *testing.T) {
	t.Setenv("FASTBUILD_COORDINATOR", "10.0.0.1")
	t.Setenv("FASTBUILD_BROKERAGE_PATH", "/srv/fb")

	config := NewConfigFromEnv()
	assert.Equal(t, ModeCoordinator, config.Mode())
	assert.Equal(t, "10.0.0.1", config.Address())
}

func TestConfigFromEnvFilesystem(t *testing.T) {
	t.Setenv("FASTBUILD_COORDINATOR", "")
	t.Setenv("FASTBUILD_BROKERAGE_PATH", "/srv/fb")

	config := NewConfigFromEnv()
	assert.Equal(t, ModeFilesystem, config.Mode())
}

func TestConfigFromEnvUnset(t *testing.T) {
	t.Setenv("FASTBUILD_COORDINATOR", "")
	t.Setenv("FASTBUILD_BROKERAGE_PATH", "")

	config := NewConfigFromEnv()
	assert.Equal(t, ModeNone, config.Mode())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "none", ModeNone.String())
	assert.Equal(t, "filesystem", ModeFilesystem.String())
	assert.Equal(t, "coordinator", ModeCoordinator.String())
}
