// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package transport carries femc.Request/Reply pairs over a TCP
// connection, standing in for the front end's real CAN-AMBSI link
// (spec §1 Non-goals: the physical CAN transport is out of scope, only
// its request/reply semantics are). It follows the net.Listener-wrapping
// server shape cmd/periph-web/web.go uses in the pack, the only example
// repo retrieved that runs a long-lived network listener.
package transport

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"

	"github.com/nrao-gbo/femc/internal/femc"
	"github.com/sirupsen/logrus"
)

// wireHeaderLen is the fixed part of a framed request: a 4-byte
// big-endian RCA followed by a 1-byte payload length (0..8).
const wireHeaderLen = 5

// Server accepts connections on a net.Listener and dispatches every
// framed request it reads to a Frontend, writing back the encoded reply.
type Server struct {
	ln  net.Listener
	fe  *femc.Frontend
	log *logrus.Logger
}

// Listen opens addr (host:port) and returns a Server ready to Serve.
func Listen(addr string, fe *femc.Frontend, log *logrus.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: listen %s: %w", addr, err)
	}
	return &Server{ln: ln, fe: fe, log: log}, nil
}

// Addr returns the listener's bound address, useful when addr was
// "host:0" and the kernel picked a port.
func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// Close stops accepting new connections. In-flight connections run to
// completion.
func (s *Server) Close() error { return s.ln.Close() }

// Serve accepts connections until the listener is closed, handling each
// on its own goroutine. It always returns a non-nil error, matching
// net/http.Server.Serve's convention.
func (s *Server) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return err
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr()
	header := make([]byte, wireHeaderLen)
	for {
		if _, err := io.ReadFull(conn, header); err != nil {
			if err != io.EOF {
				s.log.WithError(err).WithField("remote", remote).Warn("transport: reading request header")
			}
			return
		}
		addr := binary.BigEndian.Uint32(header[0:4])
		n := int(header[4])
		if n > 8 {
			s.log.WithField("remote", remote).Warn("transport: oversized payload length in request header")
			return
		}
		payload := make([]byte, n)
		if n > 0 {
			if _, err := io.ReadFull(conn, payload); err != nil {
				s.log.WithError(err).WithField("remote", remote).Warn("transport: reading request payload")
				return
			}
		}

		reply := s.fe.Dispatch(femc.Request{Address: addr, Payload: payload})
		if frame := femc.EncodeWireFrame(reply); frame != nil {
			if _, err := conn.Write(frame); err != nil {
				s.log.WithError(err).WithField("remote", remote).Warn("transport: writing reply")
				return
			}
		}
	}
}
