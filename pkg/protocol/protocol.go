package protocol

import (
	"encoding/binary"
	"time"

	"github.com/srand/fastbuild/pkg/utils"
)

const (
	// Version of the distributed build protocol. Bumping it partitions
	// incompatible fleets in the brokerage rendezvous directory. Frames
	// on the wire do not carry it.
	ProtocolVersion uint32 = 22

	// TCP port the coordinator listens on.
	CoordinatorPort = 31392

	// Timeout for establishing a connection to the coordinator.
	ConnectTimeout = 2000 * time.Millisecond
)

type MsgKind byte

const (
	MsgKindRequestWorkerList MsgKind = iota + 1
	MsgKindWorkerList
	MsgKindSetWorkerStatus
)

func (k MsgKind) String() string {
	switch k {
	case MsgKindRequestWorkerList:
		return "RequestWorkerList"
	case MsgKindWorkerList:
		return "WorkerList"
	case MsgKindSetWorkerStatus:
		return "SetWorkerStatus"
	default:
		return "Unknown"
	}
}

type Msg interface {
	Kind() MsgKind

	// Wire encoding of the message payload, without framing.
	EncodePayload() []byte
}

// Request for the current worker list. No payload.
type RequestWorkerListMsg struct{}

func (m *RequestWorkerListMsg) Kind() MsgKind {
	return MsgKindRequestWorkerList
}

func (m *RequestWorkerListMsg) EncodePayload() []byte {
	return nil
}

// List of available workers as packed IPv4 addresses.
type WorkerListMsg struct {
	Workers []uint32
}

func (m *WorkerListMsg) Kind() MsgKind {
	return MsgKindWorkerList
}

func (m *WorkerListMsg) EncodePayload() []byte {
	payload := make([]byte, 4*len(m.Workers))
	for i, worker := range m.Workers {
		binary.LittleEndian.PutUint32(payload[4*i:], worker)
	}
	return payload
}

func decodeWorkerList(payload []byte) (*WorkerListMsg, error) {
	if len(payload)%4 != 0 {
		return nil, utils.ErrBadMessage
	}

	msg := &WorkerListMsg{
		Workers: make([]uint32, 0, len(payload)/4),
	}
	for i := 0; i < len(payload); i += 4 {
		msg.Workers = append(msg.Workers, binary.LittleEndian.Uint32(payload[i:]))
	}
	return msg, nil
}

// Availability announcement from a worker. One byte payload.
type SetWorkerStatusMsg struct {
	Available bool
}

func (m *SetWorkerStatusMsg) Kind() MsgKind {
	return MsgKindSetWorkerStatus
}

func (m *SetWorkerStatusMsg) EncodePayload() []byte {
	if m.Available {
		return []byte{1}
	}
	return []byte{0}
}

func decodeSetWorkerStatus(payload []byte) (*SetWorkerStatusMsg, error) {
	if len(payload) != 1 {
		return nil, utils.ErrBadMessage
	}
	return &SetWorkerStatusMsg{Available: payload[0] != 0}, nil
}

func decodeMsg(kind MsgKind, payload []byte) (Msg, error) {
	switch kind {
	case MsgKindRequestWorkerList:
		if len(payload) != 0 {
			return nil, utils.ErrBadMessage
		}
		return &RequestWorkerListMsg{}, nil

	case MsgKindWorkerList:
		return decodeWorkerList(payload)

	case MsgKindSetWorkerStatus:
		return decodeSetWorkerStatus(payload)

	default:
		return nil, utils.ErrBadMessage
	}
}
