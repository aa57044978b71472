package utils

import (
	"os"
	"os/signal"
	"syscall"
)

// Calls the provided callbacks and exits when SIGINT or SIGTERM is received.
func TerminateOnSignal(callbacks ...func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-ch
		for _, callback := range callbacks {
			callback()
		}
		os.Exit(0)
	}()
}
