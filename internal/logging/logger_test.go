package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	testErr := errors.New("test error")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("numeric", "big"), "numeric", "big"},
		{"Int", Int("count", 42), "count", 42},
		{"Uint64", Uint64("n", 12345678901234567890), "n", uint64(12345678901234567890)},
		{"Float64", Float64("progress", 0.5), "progress", 0.5},
		{"Bool", Bool("cached", true), "cached", true},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err", Err(testErr), "error", testErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key || tt.field.Value != tt.value {
				t.Errorf("%s() = %+v, want {%s %v}", tt.name, tt.field, tt.key, tt.value)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.WarnLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"verbose", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "server")
	logger.Info("listening", String("addr", ":8080"))

	output := buf.String()
	for _, want := range []string{`"component":"server"`, "listening", ":8080", `"level":"info"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestZerologAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := newZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("debug message", Int("line", 7))
	logger.Warn("slow request", Duration("elapsed", 2*time.Second))
	logger.Error("request failed", errors.New("connection reset"), String("path", "/term"))

	output := buf.String()
	for _, want := range []string{
		"debug message", `"line":7`,
		`"level":"warn"`, "slow request",
		`"level":"error"`, "connection reset", "/term",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string", Field{Key: "str", Value: "hello"}, `"str":"hello"`},
		{"int64", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"bool", Field{Key: "flag", Value: true}, `"flag":true`},
		{"error", Field{Key: "cause", Value: errors.New("oops")}, `"cause":"oops"`},
		{"struct", Field{Key: "data", Value: struct{ X int }{X: 1}}, `"X":1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("fields", tt.field)
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("output should contain %s, got: %s", tt.contains, buf.String())
			}
		})
	}
}

func TestZerologAdapter_PrintCompat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")
	logger.Printf("term %d computed", 42)
	logger.Println("hello", "world")

	output := buf.String()
	if !strings.Contains(output, "term 42 computed") {
		t.Errorf("Printf output missing, got: %s", output)
	}
	if !strings.Contains(output, "hello world") {
		t.Errorf("Println output missing, got: %s", output)
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(l *StdLoggerAdapter)
		contains []string
	}{
		{"info", func(l *StdLoggerAdapter) { l.Info("started") }, []string{"[INFO] started"}},
		{"info with fields", func(l *StdLoggerAdapter) { l.Info("request", String("path", "/find"), Int("status", 404)) },
			[]string{"[INFO] request", "path=/find", "status=404"}},
		{"warn", func(l *StdLoggerAdapter) { l.Warn("rate limited") }, []string{"[WARN] rate limited"}},
		{"error", func(l *StdLoggerAdapter) { l.Error("failed", errors.New("boom")) }, []string{"[ERROR] failed: boom"}},
		{"debug", func(l *StdLoggerAdapter) { l.Debug("trace", Uint64("n", 10)) }, []string{"[DEBUG] trace", "n=10"}},
		{"printf", func(l *StdLoggerAdapter) { l.Printf("value is %d", 123) }, []string{"value is 123"}},
		{"println", func(l *StdLoggerAdapter) { l.Println("a", "b") }, []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output should contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}
