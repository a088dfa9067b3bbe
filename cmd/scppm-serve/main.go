// Command scppm-serve runs a long-lived SCPPM decode service: a small
// line-delimited JSON TCP protocol, advertised via mDNS/DNS-SD, grounded on
// the teacher's cmd/direwolf main loop paired with appserver.go/dns_sd.go.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/esawindowsystem/scppm/scppm"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML session config file.")
	addr := pflag.StringP("listen", "l", ":4225", "TCP listen address.")
	serviceName := pflag.StringP("name", "n", "", "DNS-SD service name (default: \"scppm on <hostname>\").")
	noAnnounce := pflag.Bool("no-announce", false, "Disable DNS-SD/mDNS announcement.")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug logging.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scppm-serve - long-lived SCPPM decode service.\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || *configPath == "" {
		pflag.Usage()
		if *configPath == "" {
			os.Exit(1)
		}
		return
	}

	cfg, err := scppm.LoadConfigFile(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var opts []scppm.SessionOption
	if *verbose {
		opts = append(opts, scppm.WithLogger(scppm.NewDebugLogger()))
	}
	session := scppm.NewSession(cfg, opts...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !*noAnnounce {
		_, port, err := parseListenPort(*addr)
		if err == nil {
			session.Announce(ctx, *serviceName, port)
		}
	}

	if err := session.Serve(ctx, *addr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
