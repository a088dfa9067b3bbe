package scppm

import (
	"context"
	"os"
	"strings"

	"github.com/brutella/dnssd"
)

// DNS-SD service announcement for the decoded-codeword network service
// (A5 in SPEC_FULL.md's ambient component table). Adapted directly from the
// teacher's dns_sd.go/dns_sd_common.go, which uses the same pure-Go
// brutella/dnssd package to advertise its KISS-over-TCP service without a
// system mDNS daemon; here it advertises the SCPPM decode service instead.

// ServiceType is the DNS-SD service type this package advertises.
const ServiceType = "_scppm-decode._tcp"

func defaultServiceName() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "scppm"
	}
	hostname, _, _ = strings.Cut(hostname, ".")
	return "scppm on " + hostname
}

// Announce advertises a decode service on port via DNS-SD/mDNS, logging
// through s's logger rather than returning an error, so callers can fire
// this from a background goroutine without threading error handling
// through their startup path (matching the teacher's dns_sd_announce,
// which is itself launched fire-and-forget from main).
func (s *Session) Announce(ctx context.Context, name string, port int) {
	if name == "" {
		name = defaultServiceName()
	}

	cfg := dnssd.Config{
		Name: name,
		Type: ServiceType,
		Port: port,
	}

	sv, err := dnssd.NewService(cfg)
	if err != nil {
		s.logger.Error("DNS-SD: failed to create service", "err", err)
		return
	}

	rp, err := dnssd.NewResponder()
	if err != nil {
		s.logger.Error("DNS-SD: failed to create responder", "err", err)
		return
	}

	if _, err := rp.Add(sv); err != nil {
		s.logger.Error("DNS-SD: failed to add service", "err", err)
		return
	}

	s.logger.Info("DNS-SD: announcing decode service", "port", port, "name", name)

	go func() {
		if err := rp.Respond(ctx); err != nil {
			s.logger.Error("DNS-SD: responder error", "err", err)
		}
	}()
}
