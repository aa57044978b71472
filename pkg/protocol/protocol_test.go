package protocol

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackAddress(t *testing.T) {
	addr, err := PackAddress("10.0.0.5")
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x0A000005), addr)

	addr, err = PackAddress("127.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x7F000001), addr)

	_, err = PackAddress("not-an-address")
	assert.Error(t, err)

	_, err = PackAddress("fe80::1")
	assert.Error(t, err)
}

func TestUnpackAddress(t *testing.T) {
	assert.Equal(t, "10.0.0.5", UnpackAddress(0x0A000005))
	assert.Equal(t, "127.0.0.1", UnpackAddress(0x7F000001))
	assert.Equal(t, "255.255.255.255", UnpackAddress(0xFFFFFFFF))
}

func TestAddressRoundTrip(t *testing.T) {
	packed, err := PackAddress("192.168.1.42")
	assert.NoError(t, err)
	assert.Equal(t, "192.168.1.42", UnpackAddress(packed))
}

func sendReceive(t *testing.T, msg Msg) Msg {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		err := NewConn(client).Send(msg)
		assert.NoError(t, err)
	}()

	received, err := NewConn(server).Receive()
	assert.NoError(t, err)
	return received
}

func TestConnRequestWorkerList(t *testing.T) {
	msg := sendReceive(t, &RequestWorkerListMsg{})
	assert.IsType(t, &RequestWorkerListMsg{}, msg)
}

func TestConnWorkerList(t *testing.T) {
	workers := []uint32{0x0A000005, 0x0A000007, 0x7F000001}
	msg := sendReceive(t, &WorkerListMsg{Workers: workers})

	list, ok := msg.(*WorkerListMsg)
	assert.True(t, ok)
	assert.Equal(t, workers, list.Workers)
}

func TestConnWorkerListEmpty(t *testing.T) {
	msg := sendReceive(t, &WorkerListMsg{})

	list, ok := msg.(*WorkerListMsg)
	assert.True(t, ok)
	assert.Empty(t, list.Workers)
}

func TestConnSetWorkerStatus(t *testing.T) {
	msg := sendReceive(t, &SetWorkerStatusMsg{Available: true})

	status, ok := msg.(*SetWorkerStatusMsg)
	assert.True(t, ok)
	assert.True(t, status.Available)

	msg = sendReceive(t, &SetWorkerStatusMsg{Available: false})

	status, ok = msg.(*SetWorkerStatusMsg)
	assert.True(t, ok)
	assert.False(t, status.Available)
}

func TestConnTruncatedFrame(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	go func() {
		// Header promises more payload than is sent.
		client.Write([]byte{0xff, 0x00, 0x00, 0x00, byte(MsgKindWorkerList)})
		client.Close()
	}()

	_, err := NewConn(server).Receive()
	assert.Error(t, err)
}

type captureHandler struct {
	requests  int
	workers   [][]uint32
	available []bool
}

func (h *captureHandler) OnRequestWorkerList(conn *Conn) {
	h.requests++
}

func (h *captureHandler) OnWorkerList(conn *Conn, workers []uint32) {
	h.workers = append(h.workers, workers)
}

func (h *captureHandler) OnSetWorkerStatus(conn *Conn, available bool) {
	h.available = append(h.available, available)
}

func TestConnServeDispatch(t *testing.T) {
	client, server := net.Pipe()

	go func() {
		conn := NewConn(client)
		conn.Send(&RequestWorkerListMsg{})
		conn.Send(&WorkerListMsg{Workers: []uint32{0x0A000001}})
		conn.Send(&SetWorkerStatusMsg{Available: true})
		conn.Close()
	}()

	handler := &captureHandler{}
	err := NewConn(server).Serve(handler)
	assert.NoError(t, err)

	assert.Equal(t, 1, handler.requests)
	assert.Equal(t, [][]uint32{{0x0A000001}}, handler.workers)
	assert.Equal(t, []bool{true}, handler.available)
}
