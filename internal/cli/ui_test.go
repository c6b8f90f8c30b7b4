package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/fiblike/internal/cli/mocks"
	"github.com/agbru/fiblike/internal/orchestration"
)

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	rs := &realSpinner{spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(&bytes.Buffer{}))}
	rs.Start()
	rs.UpdateSuffix(" test")
	if rs.s.Suffix != " test" {
		t.Errorf("Suffix = %q", rs.s.Suffix)
	}
	rs.Stop()
}

// Not parallel: replaces newSpinner.
func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockSpinner(ctrl)
	m.EXPECT().Start().Times(1)
	m.EXPECT().Stop().Times(1)
	m.EXPECT().UpdateSuffix(gomock.Any()).AnyTimes()

	orig := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return m }
	defer func() { newSpinner = orig }()

	updates := make(chan orchestration.ProgressUpdate, 4)
	var buf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, updates, 2, &buf)

	updates <- orchestration.ProgressUpdate{Index: 0, Value: 0.5}
	updates <- orchestration.ProgressUpdate{Index: 1, Value: 1}
	time.Sleep(2 * ProgressRefreshRate)
	close(updates)
	wg.Wait()

	out := buf.String()
	if !strings.Contains(out, "Avg progress:") || !strings.Contains(out, "100.0%") {
		t.Errorf("final line = %q", out)
	}
}

func TestDisplayProgress_NoBackends(t *testing.T) {
	t.Parallel()
	updates := make(chan orchestration.ProgressUpdate, 1)
	updates <- orchestration.ProgressUpdate{}
	close(updates)

	var buf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, updates, 0, &buf)
	wg.Wait()
	if buf.Len() != 0 {
		t.Errorf("nothing should be printed, got %q", buf.String())
	}
}

func TestProgressLabel(t *testing.T) {
	t.Parallel()
	if progressLabel(1) != "Progress" || progressLabel(3) != "Avg progress" {
		t.Error("unexpected progress labels")
	}
}
