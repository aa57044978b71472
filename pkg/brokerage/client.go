package brokerage

import (
	"time"

	"github.com/srand/fastbuild/pkg/log"
	"github.com/srand/fastbuild/pkg/protocol"
	"github.com/srand/fastbuild/pkg/utils"
)

// A single request/response exchange with the coordinator. The
// connection lives for exactly one exchange and is released on every
// exit path; the coordinator only ever sees short discrete sessions.

func (b *Brokerage) connect() (*protocol.Conn, error) {
	conn, err := protocol.Dial(b.config.Address(), b.config.Port(), protocol.ConnectTimeout)
	if err != nil {
		log.Debugf("Failed to connect to the coordinator at %s: %v", b.config.Address(), err)
		return nil, utils.ErrUnreachable
	}

	log.Debug("Connected to the coordinator")
	return conn, nil
}

// requestWorkerList asks the coordinator for the current worker list
// and blocks until the list is delivered through UpdateWorkerList, or
// until the bounded response wait elapses.
func (b *Brokerage) requestWorkerList() ([]uint32, error) {
	conn, err := b.connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	b.mu.Lock()
	b.pendingWorkers = nil
	b.pendingReady = false
	b.readyCh = make(chan struct{})
	ready := b.readyCh
	b.mu.Unlock()

	go conn.Serve(b)

	log.Debug("Requesting worker list")
	if err := conn.Send(&protocol.RequestWorkerListMsg{}); err != nil {
		return nil, err
	}

	select {
	case <-ready:
	case <-time.After(b.responseTimeout):
		return nil, utils.ErrResponseTimeout
	}

	b.mu.Lock()
	workers := b.pendingWorkers
	b.pendingWorkers = nil
	b.pendingReady = false
	b.mu.Unlock()

	log.Debugf("Worker list received: %d workers", len(workers))
	return workers, nil
}

// sendWorkerStatus announces availability to the coordinator. No
// response is awaited. Returns false when the coordinator could not
// be reached; the worker retries on the next throttle tick.
func (b *Brokerage) sendWorkerStatus(available bool) bool {
	conn, err := b.connect()
	if err != nil {
		return false
	}
	defer conn.Close()

	if err := conn.Send(&protocol.SetWorkerStatusMsg{Available: available}); err != nil {
		log.Debug("Failed to send worker status:", err)
		return false
	}

	return true
}

// The brokerage is the delivery target of the connection read loop.

func (b *Brokerage) OnWorkerList(conn *protocol.Conn, workers []uint32) {
	b.UpdateWorkerList(workers)
}

func (b *Brokerage) OnRequestWorkerList(conn *protocol.Conn) {
	// Coordinator-side message. Not expected here.
}

func (b *Brokerage) OnSetWorkerStatus(conn *protocol.Conn, available bool) {
	// Coordinator-side message. Not expected here.
}
