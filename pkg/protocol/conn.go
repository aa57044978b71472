package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"
)

// Handler receives decoded messages from a connection read loop.
type Handler interface {
	OnRequestWorkerList(conn *Conn)
	OnWorkerList(conn *Conn, workers []uint32)
	OnSetWorkerStatus(conn *Conn, available bool)
}

// Conn frames protocol messages over a TCP connection.
//
// Wire format of a frame:
//   - Payload length (uint32, little-endian), including the kind byte
//   - Message kind (byte)
//   - Payload
type Conn struct {
	conn net.Conn
}

// Dial connects to a coordinator endpoint with the given timeout.
func Dial(address string, port int, timeout time.Duration) (*Conn, error) {
	endpoint := net.JoinHostPort(address, fmt.Sprint(port))
	conn, err := net.DialTimeout("tcp", endpoint, timeout)
	if err != nil {
		return nil, err
	}
	return NewConn(conn), nil
}

func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn}
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Send frames and writes a single message.
func (c *Conn) Send(msg Msg) error {
	payload := msg.EncodePayload()

	frame := make([]byte, 5+len(payload))
	binary.LittleEndian.PutUint32(frame, uint32(1+len(payload)))
	frame[4] = byte(msg.Kind())
	copy(frame[5:], payload)

	written := 0
	for written < len(frame) {
		n, err := c.conn.Write(frame[written:])
		if err != nil {
			return err
		}
		written += n
	}

	return nil
}

// Receive blocks until a full message has been read and decoded.
func (c *Conn) Receive() (Msg, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(c.conn, header); err != nil {
		return nil, err
	}

	length := binary.LittleEndian.Uint32(header)
	if length == 0 {
		return nil, fmt.Errorf("invalid frame length: %d", length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(c.conn, body); err != nil {
		return nil, err
	}

	return decodeMsg(MsgKind(body[0]), body[1:])
}

// Serve reads messages until the connection is closed, dispatching each
// to the handler. Returns nil on orderly shutdown.
func (c *Conn) Serve(handler Handler) error {
	for {
		msg, err := c.Receive()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				return nil
			}
			return err
		}

		switch msg := msg.(type) {
		case *RequestWorkerListMsg:
			handler.OnRequestWorkerList(c)
		case *WorkerListMsg:
			handler.OnWorkerList(c, msg.Workers)
		case *SetWorkerStatusMsg:
			handler.OnSetWorkerStatus(c, msg.Available)
		}
	}
}
