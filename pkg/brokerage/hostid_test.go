package brokerage

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostIdentity(t *testing.T) {
	identity := HostIdentity()

	if runtime.GOOS == "darwin" {
		// Either the primary interface address or the hostname,
		// depending on the machine. Both are acceptable.
		return
	}

	hostname, err := os.Hostname()
	assert.NoError(t, err)
	assert.Equal(t, hostname, identity)
}
