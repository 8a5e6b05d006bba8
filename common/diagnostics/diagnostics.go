// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"runtime"
	rpprof "runtime/pprof"
	"runtime/trace"
	"strings"
	"time"

	"github.com/0xsoniclabs/hashcheck/common/logging"
	"github.com/urfave/cli/v2"
)

var (
	PortFlag = cli.IntFlag{
		Name:  "diagnostic-port",
		Usage: "enable hosting of a realtime diagnostic server by providing a port",
		Value: 0,
	}
	CpuProfileFlag = cli.StringFlag{
		Name:  "cpuprofile",
		Usage: "sets the target file for storing CPU profiles to, disabled if empty",
		Value: "",
	}
	TraceFlag = cli.StringFlag{
		Name:  "tracefile",
		Usage: "sets the target file for traces to, disabled if empty",
		Value: "",
	}
)

// Flags lists the flags controlling the diagnostics of an action.
func Flags() []cli.Flag {
	return []cli.Flag{&PortFlag, &CpuProfileFlag, &TraceFlag}
}

// Wrap decorates an action with the performance diagnostics selected by the
// flags returned by Flags: a pprof server, CPU profiling and execution
// tracing. All diagnostics are stopped when the action returns. Messages
// are logged to the application's error writer.
func Wrap(action cli.ActionFunc) cli.ActionFunc {
	return func(context *cli.Context) error {
		log := logging.NewLogTo(context.App.ErrWriter)
		if port := context.Int(PortFlag.Name); port > 0 && port < (1<<16) {
			stop, err := startDiagnosticServer(port, log)
			if err != nil {
				return err
			}
			defer stop()
		}

		if filename := strings.TrimSpace(context.String(CpuProfileFlag.Name)); filename != "" {
			stop, err := startCpuProfiler(filename)
			if err != nil {
				return err
			}
			defer stop()
		}

		if filename := strings.TrimSpace(context.String(TraceFlag.Name)); filename != "" {
			stop, err := startTracer(filename)
			if err != nil {
				return err
			}
			defer stop()
		}

		return action(context)
	}
}

func startDiagnosticServer(port int, log *logging.Log) (func(), error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to start diagnostic server: %w", err)
	}
	log.Printf("Starting diagnostic server at http://localhost:%d/debug/pprof/", port)

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	runtime.SetBlockProfileRate(1)
	runtime.SetMutexProfileFraction(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Diagnostic server failed: %v", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
		<-done
		runtime.SetBlockProfileRate(0)
		runtime.SetMutexProfileFraction(0)
	}, nil
}

func startCpuProfiler(filename string) (func(), error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := rpprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}
	return func() {
		rpprof.StopCPUProfile()
		f.Close()
	}, nil
}

func startTracer(filename string) (func(), error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}
	if err := trace.Start(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start trace: %w", err)
	}
	return func() {
		trace.Stop()
		f.Close()
	}, nil
}
