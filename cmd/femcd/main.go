// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// femcd runs the front-end monitor-and-control firmware described in
// SPEC_FULL.md: it builds a Frontend in the requested operating mode and
// serves CAN-AMBSI-equivalent requests over TCP until asked to stop.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/nrao-gbo/femc/internal/femc"
	"github.com/nrao-gbo/femc/internal/transport"
	"github.com/sirupsen/logrus"
)

func parseMode(s string) (femc.Mode, error) {
	switch strings.ToUpper(s) {
	case "MAINTENANCE":
		return femc.MaintenanceMode, nil
	case "OPERATIONAL":
		return femc.OperationalMode, nil
	case "TROUBLESHOOTING":
		return femc.TroubleshootingMode, nil
	case "SIMULATION":
		return femc.SimulationMode, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

func parseVersion(s string) ([3]byte, error) {
	var v [3]byte
	parts := strings.SplitN(s, ".", 3)
	if len(parts) != 3 {
		return v, fmt.Errorf("version %q must be major.minor.patch", s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return v, fmt.Errorf("version %q: invalid component %q", s, p)
		}
		v[i] = byte(n)
	}
	return v, nil
}

func mainImpl() error {
	mode := flag.String("mode", "SIMULATION", "operating mode at startup: MAINTENANCE, OPERATIONAL, TROUBLESHOOTING, SIMULATION")
	listen := flag.String("listen", "localhost:4900", "address to serve requests on")
	ip := flag.String("ip", "127.0.0.1", "front end's own IP address, reported at the special IP-address RCA")
	version := flag.String("version", "1.0.0", "firmware version reported at the special version-info RCA")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	m, err := parseMode(*mode)
	if err != nil {
		return err
	}
	v, err := parseVersion(*version)
	if err != nil {
		return err
	}

	fe, err := femc.NewFrontend(m, *ip, v)
	if err != nil {
		return fmt.Errorf("building frontend: %w", err)
	}
	log := fe.Log()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	srv, err := transport.Listen(*listen, fe, log)
	if err != nil {
		return err
	}
	log.WithField("addr", srv.Addr()).Info("femcd listening")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve() }()

	select {
	case <-sig:
		log.Info("shutting down on signal")
		srv.Close()
		fe.Shutdown(false)
		return nil
	case err := <-serveErr:
		fe.Shutdown(false)
		return err
	}
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "femcd: %s.\n", err)
		os.Exit(1)
	}
}
