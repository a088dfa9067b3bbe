package main

import (
	"fmt"
	"net"
	"strconv"
)

func parseListenPort(addr string) (host string, port int, err error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("scppm-serve: parsing listen address %q: %w", addr, err)
	}
	port, err = strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("scppm-serve: parsing listen port %q: %w", portStr, err)
	}
	return host, port, nil
}
