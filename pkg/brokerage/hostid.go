package brokerage

import (
	"os"
)

// HostIdentity resolves the identifier naming the local node within
// the fleet. It is used both as the rendezvous file name and as the
// self-filter key when listing workers.
//
// On most platforms this is the OS hostname. On darwin the IPv4
// address of the primary interface is preferred when it resolves,
// which places darwin nodes in a different rendezvous namespace than
// the rest of a mixed fleet.
func HostIdentity() string {
	name, err := os.Hostname()
	if err != nil {
		name = ""
	}

	if ip, ok := primaryInterfaceIPv4(); ok {
		name = ip
	}

	return name
}
