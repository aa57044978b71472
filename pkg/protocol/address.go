package protocol

import (
	"fmt"
	"net"

	"github.com/srand/fastbuild/pkg/utils"
)

// PackAddress converts a dotted quad IPv4 address into its packed
// 32-bit wire form, e.g. "10.0.0.5" -> 0x0A000005.
func PackAddress(address string) (uint32, error) {
	ip := net.ParseIP(address)
	if ip == nil {
		return 0, utils.ErrBadMessage
	}

	ip4 := ip.To4()
	if ip4 == nil {
		return 0, utils.ErrBadMessage
	}

	return uint32(ip4[0])<<24 | uint32(ip4[1])<<16 | uint32(ip4[2])<<8 | uint32(ip4[3]), nil
}

// UnpackAddress converts a packed 32-bit IPv4 address into its
// dotted quad string form.
func UnpackAddress(address uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d",
		byte(address>>24), byte(address>>16), byte(address>>8), byte(address))
}
