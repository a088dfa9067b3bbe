package scppm

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
)

// Decoded-codeword network service (A5 in SPEC_FULL.md): a small
// line-delimited JSON TCP service that accepts a batch of pulse timestamps
// and returns the decoded payloads plus session metadata. Loosely grounded
// on the teacher's appserver.go connection-accept loop (one goroutine per
// client, logged connect/disconnect) but purpose-built and much smaller:
// this serves decode requests rather than emulating an AX.25 BBS.

// DecodeRequest is one line of client input: a batch of pulse arrival
// times (seconds) plus the frame start time and symbol count to demodulate.
type DecodeRequest struct {
	PulseTimes []float64 `json:"pulse_times"`
	StartTime  float64   `json:"start_time"`
	NumSymbols int       `json:"num_symbols"`
}

// DecodeResponse is the service's reply for one DecodeRequest.
type DecodeResponse struct {
	Payloads [][]byte        `json:"payloads"`
	Metadata SessionMetadata `json:"metadata"`
	Error    string          `json:"error,omitempty"`
}

// Serve listens on addr and handles decode requests until ctx is canceled.
func (s *Session) Serve(ctx context.Context, addr string) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("scppm: listen %s: %w", addr, err)
	}
	defer ln.Close()

	s.logger.Info("decode service listening", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				s.logger.Error("accept error", "err", err)
				continue
			}
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Session) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	s.logger.Debug("client connected", "remote", remote)
	defer s.logger.Debug("client disconnected", "remote", remote)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	enc := json.NewEncoder(conn)

	for scanner.Scan() {
		var req DecodeRequest
		resp := DecodeResponse{}

		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			resp.Error = err.Error()
			_ = enc.Encode(resp)
			continue
		}

		payloads, meta, err := s.Decode(ctx, req.PulseTimes, req.StartTime, req.NumSymbols)
		resp.Payloads = payloads
		resp.Metadata = meta
		if err != nil {
			resp.Error = err.Error()
		}

		if err := enc.Encode(resp); err != nil {
			s.logger.Error("write response", "remote", remote, "err", err)
			return
		}
	}
}
