package utils

import (
	"fmt"
)

var (
	ErrBadMessage      = fmt.Errorf("Bad message")
	ErrNoBrokerage     = fmt.Errorf("No brokerage configured")
	ErrNoWorkers       = fmt.Errorf("No workers available")
	ErrResponseTimeout = fmt.Errorf("Timed out waiting for coordinator response")
	ErrUnreachable     = fmt.Errorf("Coordinator is unreachable")
)
