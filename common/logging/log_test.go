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
	"bytes"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/0xsoniclabs/hashcheck/chain"
	"github.com/stretchr/testify/require"
)

func newTestLog(buf *bytes.Buffer) *Log {
	return &Log{logger: log.New(buf, "", 0), start: time.Now()}
}

func TestLog_PrintfPrefixesElapsedTime(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLog(&buf)
	l.Printf("hello %d", 12)
	require.Equal(t, "[t=   0:00] - hello 12\n", buf.String())
}

func TestLog_ElapsedTimeIsMinutesAndSeconds(t *testing.T) {
	var buf bytes.Buffer
	l := &Log{logger: log.New(&buf, "", 0), start: time.Now().Add(-125 * time.Second)}
	l.Print("late")
	require.Equal(t, "[t=   2:05] - late\n", buf.String())
}

func TestProgressLogger_ReportsAtEveryPeriod(t *testing.T) {
	var buf bytes.Buffer
	progress := newTestLog(&buf).NewProgressTracker("done %d, %.2f/s", 10)

	for i := 0; i < 9; i++ {
		progress.Step(1)
	}
	require.Empty(t, buf.String())

	progress.Step(1)
	require.Contains(t, buf.String(), "done 10, ")

	progress.Step(25)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], "done 35, ")
	require.Equal(t, int64(35), progress.Count())
}

func TestProgressLogger_RateCoversAllItemsSinceLastReport(t *testing.T) {
	var buf bytes.Buffer
	now := time.Unix(1000, 0)
	l := &Log{
		logger: log.New(&buf, "", 0),
		start:  now,
		now:    func() time.Time { return now },
	}
	progress := l.NewProgressTracker("done %d, %.0f/s", 1000)

	for i := 0; i < 20; i++ {
		now = now.Add(10 * time.Millisecond)
		progress.Step(100)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, []string{
		"[t=   0:00] - done 1000, 10000/s",
		"[t=   0:00] - done 2000, 10000/s",
	}, lines)
}

func TestProgressLogger_IgnoresEmptySteps(t *testing.T) {
	var buf bytes.Buffer
	progress := newTestLog(&buf).NewProgressTracker("done %d, %.2f/s", 1)
	progress.Step(0)
	progress.Step(-3)
	require.Zero(t, progress.Count())
	require.Empty(t, buf.String())
}

func TestProgressLogger_NonPositivePeriodReportsEveryStep(t *testing.T) {
	var buf bytes.Buffer
	progress := newTestLog(&buf).NewProgressTracker("done %d, %.2f/s", 0)
	progress.Step(1)
	progress.Step(1)
	require.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 2)
}

func TestProgressLogger_CountsConcurrentSteps(t *testing.T) {
	var buf bytes.Buffer
	progress := newTestLog(&buf).NewProgressTracker("done %d, %.2f/s", 1000)

	const workers, steps = 8, 500
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < steps; j++ {
				progress.Step(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(workers*steps), progress.Count())
}

func TestProgressLogger_TracksHashesOfAnEngine(t *testing.T) {
	var buf bytes.Buffer
	progress := newTestLog(&buf).NewProgressTracker("hashed %d, %.2f/s", chain.ReportInterval)

	var observer chain.Observer = progress
	observer.Advanced("sha256", chain.ReportInterval)
	observer.Advanced("sha256", 5)
	require.Equal(t, int64(chain.ReportInterval+5), progress.Count())
	require.Contains(t, buf.String(), "hashed 65536, ")
}
