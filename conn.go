package main

import (
	"errors"
	"io"
	"log"
	"net"
)

// handleConnection owns one accepted socket: read/parse/execute/write,
// repeated until the client disconnects or a protocol error closes the
// connection. Suspension only happens at socket read and socket write;
// parsing, validation, and store operations are synchronous.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	defer s.stats.Connections.Dec()

	remote := conn.RemoteAddr()

	buf := s.bytePool.Get(4096)
	defer s.bytePool.Put(buf)

	tmp := make([]byte, 4096)

	for {
		// Drain as many complete frames as buf already holds before
		// reading again, so pipelined requests reply in arrival order.
		for {
			frame, consumed, err := ParseFrame(buf)
			if errors.Is(err, ErrIncomplete) {
				break
			}
			if err != nil {
				var protoErr *ProtocolError
				if errors.As(err, &protoErr) {
					log.Printf("conn %s: protocol error: %v", remote, protoErr)
				} else {
					log.Printf("conn %s: parse error: %v", remote, err)
				}
				return
			}

			buf = buf[consumed:]

			reply := s.dispatch(frame)
			out := Serialize(reply)
			s.stats.BytesWritten.Add(uint64(len(out)))
			if _, err := conn.Write(out); err != nil {
				log.Printf("conn %s: write error: %v", remote, err)
				return
			}
		}

		n, err := conn.Read(tmp)
		if n > 0 {
			buf = append(buf, tmp[:n]...)
			s.stats.BytesRead.Add(uint64(n))
		}
		if err != nil {
			if err != io.EOF {
				log.Printf("conn %s: read error: %v", remote, err)
			}
			return
		}
	}
}

// dispatch turns one request Frame into one reply Frame: validate into a
// Command (user errors become SimpleError replies, the connection stays
// open) then execute against the shared store.
func (s *Server) dispatch(frame Frame) Frame {
	cmd, err := ParseCommand(frame)
	if err != nil {
		return SimpleError(err.Error())
	}
	s.stats.recordCommand(cmd.Kind)
	return Execute(cmd, s.store)
}
