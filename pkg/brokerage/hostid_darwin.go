//go:build darwin

package brokerage

import (
	"net"
)

// The conventional primary ethernet interface on darwin.
const primaryInterface = "en0"

func primaryInterfaceIPv4() (string, bool) {
	iface, err := net.InterfaceByName(primaryInterface)
	if err != nil {
		return "", false
	}

	addrs, err := iface.Addrs()
	if err != nil {
		return "", false
	}

	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil {
			return ip4.String(), true
		}
	}

	return "", false
}
