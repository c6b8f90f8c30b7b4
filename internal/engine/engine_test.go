package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	apperrors "github.com/agbru/fiblike/internal/errors"
	"github.com/agbru/fiblike/internal/sequence"
)

func TestBackends_Term(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	tests := []struct {
		numeric string
		seed    Seed
		n       uint64
		want    string
	}{
		{"big", DefaultSeed, 100, "354224848179261915075"},
		{"big", Seed{"2", "3"}, 4, "8"},
		{"int64", DefaultSeed, 92, "7540113804746346429"},
		{"int64", DefaultSeed, 93, "-6246583658587674878"},
		{"uint64", DefaultSeed, 93, "12200160415121876738"},
		{"uint64", Seed{"2", "1"}, 10, "76"},
	}

	for _, tt := range tests {
		t.Run(tt.numeric+"/"+tt.want, func(t *testing.T) {
			t.Parallel()
			got, err := factory.MustGet(tt.numeric).Term(context.Background(), tt.seed, tt.n, nil)
			if err != nil {
				t.Fatalf("Term error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Term(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestBackends_Find(t *testing.T) {
	t.Parallel()
	e := NewDefaultFactory().MustGet("big")

	pos, err := e.Find(context.Background(), DefaultSeed, "610")
	if err != nil || pos != 15 {
		t.Errorf("Find(610) = %d, %v; want 15", pos, err)
	}

	_, err = e.Find(context.Background(), DefaultSeed, "4")
	if !errors.Is(err, sequence.ErrNotFound) {
		t.Errorf("Find(4) error = %v, want ErrNotFound", err)
	}
}

func TestBackends_Terms(t *testing.T) {
	t.Parallel()
	e := NewDefaultFactory().MustGet("uint64")
	got, err := e.Terms(context.Background(), Seed{"2", "3"}, 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2", "3", "5", "8", "13"}
	if len(got) != len(want) {
		t.Fatalf("Terms = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Terms = %v, want %v", got, want)
		}
	}

	empty, err := e.Terms(context.Background(), DefaultSeed, 0)
	if err != nil || empty != nil {
		t.Errorf("Terms(0) = %v, %v; want nil, nil", empty, err)
	}
}

func TestBackends_InvalidInput(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()
	ctx := context.Background()

	tests := []struct {
		name  string
		field string
		call  func() error
	}{
		{"position zero", "n", func() error {
			_, err := factory.MustGet("big").Term(ctx, DefaultSeed, 0, nil)
			return err
		}},
		{"seed out of int64 range", "seed", func() error {
			_, err := factory.MustGet("int64").Term(ctx, Seed{"1", "99999999999999999999"}, 5, nil)
			return err
		}},
		{"negative seed for uint64", "seed", func() error {
			_, err := factory.MustGet("uint64").Terms(ctx, Seed{"-1", "1"}, 3)
			return err
		}},
		{"non numeric target", "value", func() error {
			_, err := factory.MustGet("big").Find(ctx, DefaultSeed, "abc")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var valErr apperrors.ValidationError
			if err := tt.call(); !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if valErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", valErr.Field, tt.field)
			}
		})
	}
}

func TestBackends_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewDefaultFactory().MustGet("uint64")
	if _, err := e.Term(ctx, DefaultSeed, 1_000_000, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Term error = %v, want context.Canceled", err)
	}
	if _, err := e.Terms(ctx, DefaultSeed, 10_000); !errors.Is(err, context.Canceled) {
		t.Errorf("Terms error = %v, want context.Canceled", err)
	}
}

func TestNew_NilArithmeticPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("New(nil) should panic")
		}
	}()
	New[int64](nil, "")
}

func TestStatusOf(t *testing.T) {
	t.Parallel()
	_, notFound := sequence.Fibonacci[int64](sequence.Int64{}).Find(4)
	tests := []struct {
		err  error
		want string
	}{
		{nil, StatusSuccess},
		{notFound, StatusNotFound},
		{context.Canceled, StatusError},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Errorf("statusOf(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestInstrument_RecordsMetrics(t *testing.T) {
	t.Parallel()
	e := Instrument(New[int64](sequence.Int64{}, "test"))
	if Instrument(e) != e {
		t.Error("Instrument should not wrap twice")
	}
	if _, err := e.Term(context.Background(), DefaultSeed, 10, nil); err != nil {
		t.Fatal(err)
	}

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, name := range []string{"fiblike_computations_total", "fiblike_computation_duration_seconds"} {
		if !found[name] {
			t.Errorf("metric %s not registered", name)
		}
	}
}

func TestBackends_FindStopsWithoutDeadline(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	tests := []struct {
		numeric string
		seed    Seed
		target  string
	}{
		{"big", Seed{"0", "0"}, "5"},
		{"uint64", Seed{"0", "0"}, "5"},
		{"int64", DefaultSeed, "9223372036854775807"},
		{"uint64", DefaultSeed, "18446744073709551615"},
		{"big", DefaultSeed, "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.numeric+"/"+tt.target, func(t *testing.T) {
			t.Parallel()
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_, err := factory.MustGet(tt.numeric).Find(ctx, tt.seed, tt.target)
			if !errors.Is(err, sequence.ErrNotFound) {
				t.Errorf("Find(%s) with seed %s error = %v, want ErrNotFound", tt.target, tt.seed, err)
			}
		})
	}
}

func TestBackends_TermsHugeCount(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := NewDefaultFactory().MustGet("uint64").Terms(ctx, DefaultSeed, 100_000_000_000_000)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Terms error = %v, want context.DeadlineExceeded", err)
	}
}

type panickingEngine struct{ Engine }

func (panickingEngine) Name() string { return "panicking" }

func (panickingEngine) Term(context.Context, Seed, uint64, sequence.ProgressFunc) (string, error) {
	panic("boom")
}

func TestInstrument_PanicCountsAsError(t *testing.T) {
	t.Parallel()
	e := Instrument(panickingEngine{})

	func() {
		defer func() {
			if recover() == nil {
				t.Error("the panic should propagate through the wrapper")
			}
		}()
		_, _ = e.Term(context.Background(), DefaultSeed, 10, nil)
	}()

	if got := computationCount(t, "panicking", StatusError); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
	if got := computationCount(t, "panicking", StatusSuccess); got != 0 {
		t.Errorf("success count = %v, want 0", got)
	}
}

// computationCount reads fiblike_computations_total for a numeric and status.
func computationCount(t *testing.T, numeric, status string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range families {
		if mf.GetName() != "fiblike_computations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["numeric"] == numeric && labels["status"] == status {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}
