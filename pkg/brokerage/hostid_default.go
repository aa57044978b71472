//go:build !darwin

package brokerage

func primaryInterfaceIPv4() (string, bool) {
	return "", false
}
