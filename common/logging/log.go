// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"
)

// Log prints messages prefixed by the time elapsed since its creation.
type Log struct {
	logger *log.Logger
	start  time.Time
	now    func() time.Time // < clock, time.Now if nil
}

// NewLog creates a log printing to stderr.
func NewLog() *Log {
	return NewLogTo(os.Stderr)
}

// NewLogTo creates a log printing to the given writer.
func NewLogTo(out io.Writer) *Log {
	return &Log{
		logger: log.New(out, "", log.LstdFlags),
		start:  time.Now(),
	}
}

func (l *Log) clock() time.Time {
	if l.now == nil {
		return time.Now()
	}
	return l.now()
}

func (l *Log) Print(msg string) {
	t := uint64(l.clock().Sub(l.start).Seconds())
	l.logger.Printf("[t=%4d:%02d] - %s\n", t/60, t%60, msg)
}

func (l *Log) Printf(format string, args ...any) {
	l.Print(fmt.Sprintf(format, args...))
}

// NewProgressTracker creates a logger reporting every time the number of
// processed items passes a multiple of period. The format receives the
// number of items processed so far and the rate of items per second.
func (l *Log) NewProgressTracker(format string, period int) *ProgressLogger {
	if period <= 0 {
		period = 1
	}
	res := &ProgressLogger{
		format: format,
		period: int64(period),
		log:    l,
	}
	res.last.Store(l.clock().UnixNano())
	return res
}

// ProgressLogger counts processed items and logs the progress rate. It is
// safe for concurrent use.
type ProgressLogger struct {
	format    string
	period    int64
	counter   atomic.Int64
	last      atomic.Int64 // < unix nanos of the last report
	lastCount atomic.Int64 // < counter value at the last report
	log       *Log
}

// Step adds size processed items.
func (p *ProgressLogger) Step(size int) {
	if size <= 0 {
		return
	}
	after := p.counter.Add(int64(size))
	before := after - int64(size)
	if before/p.period == after/p.period {
		return
	}
	now := p.log.clock().UnixNano()
	last := p.last.Swap(now)
	lastCount := p.lastCount.Swap(after)
	elapsed := max(now-last, 1)
	rate := float64(after-lastCount) / (float64(elapsed) / float64(time.Second))
	p.log.Printf(p.format, after, rate)
}

// Count returns the number of items processed so far.
func (p *ProgressLogger) Count() int64 {
	return p.counter.Load()
}

// Advanced counts hashes computed by a chain engine.
func (p *ProgressLogger) Advanced(_ string, steps int) {
	p.Step(steps)
}
