package coordinator

import (
	"net"

	"github.com/google/uuid"
	"github.com/srand/fastbuild/pkg/log"
	"github.com/srand/fastbuild/pkg/protocol"
)

// Server accepts brokerage connections and answers worker list
// requests and status announcements. Sessions are short-lived; no
// session state survives a disconnect.
type Server struct {
	registry *Registry
	listener net.Listener
}

func NewServer(registry *Registry) *Server {
	return &Server{
		registry: registry,
	}
}

func (s *Server) ListenAndServe(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}

	log.Info("Listening on tcp", listener.Addr().String())
	return s.Serve(listener)
}

func (s *Server) Serve(listener net.Listener) error {
	s.listener = listener

	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}

		session := newSession(s.registry)
		go session.serve(protocol.NewConn(conn))
	}
}

func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// A session handles a single brokerage connection.
type session struct {
	id       string
	registry *Registry
}

func newSession(registry *Registry) *session {
	id, _ := uuid.NewRandom()
	return &session{
		id:       id.String(),
		registry: registry,
	}
}

func (s *session) serve(conn *protocol.Conn) {
	defer conn.Close()

	log.Debugf("Session %s: connected from %s", s.id, conn.RemoteAddr())
	if err := conn.Serve(s); err != nil {
		log.Debugf("Session %s: %v", s.id, err)
	}
	log.Debugf("Session %s: disconnected", s.id)
}

func (s *session) OnRequestWorkerList(conn *protocol.Conn) {
	workers := s.registry.Workers()
	log.Debugf("Session %s: worker list requested, %d workers", s.id, len(workers))

	if err := conn.Send(&protocol.WorkerListMsg{Workers: workers}); err != nil {
		log.Debugf("Session %s: failed to send worker list: %v", s.id, err)
	}
}

func (s *session) OnSetWorkerStatus(conn *protocol.Conn, available bool) {
	address, err := remoteIPv4(conn)
	if err != nil {
		log.Warnf("Session %s: ignoring status from %s: %v", s.id, conn.RemoteAddr(), err)
		return
	}

	s.registry.SetStatus(address, available)
}

func (s *session) OnWorkerList(conn *protocol.Conn, workers []uint32) {
	// Client-side message. Not expected here.
}

func remoteIPv4(conn *protocol.Conn) (uint32, error) {
	addr, ok := conn.RemoteAddr().(*net.TCPAddr)
	if !ok {
		return 0, net.InvalidAddrError("not a TCP address")
	}

	ip4 := addr.IP.To4()
	if ip4 == nil {
		return 0, net.InvalidAddrError("not an IPv4 address")
	}

	return protocol.PackAddress(ip4.String())
}
