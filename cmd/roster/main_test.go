package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/peterh/liner"
	"github.com/prometheus/client_golang/prometheus"

	"rostercore/internal/config"
	"rostercore/internal/core"
	"rostercore/internal/parser"
)

type scriptedReader struct {
	lines   []string
	history []string
	closed  bool
}

func (s *scriptedReader) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	if line == "^C" {
		return "", liner.ErrPromptAborted
	}
	return line, nil
}

func (s *scriptedReader) AppendHistory(item string) { s.history = append(s.history, item) }
func (s *scriptedReader) Close() error              { s.closed = true; return nil }

func useScript(t *testing.T, lines ...string) *scriptedReader {
	t.Helper()
	r := &scriptedReader{lines: lines}
	prev := newLineReader
	newLineReader = func(string) lineReader { return r }
	t.Cleanup(func() { newLineReader = prev })
	return r
}

func memoryConfig() config.Config {
	return config.Config{
		StorageDriver: "memory",
		BlobDriver:    "memory",
		TotalGroups:   1,
		LogLevel:      "error",
	}
}

func TestRunSession(t *testing.T) {
	script := useScript(t,
		"add n/Alice Tan p/91234567 e/alice@example.com c/staff",
		"addp n/Bob Lee p/81234567 e/bob@example.com",
		"",
		"^C",
		"list",
		"find bob",
		"delete 5",
		"undo",
		"undo",
		"redo",
		"addevent n/Orientation d/2024-08-12 c/participant",
		"listevents",
		"bogus",
		"q",
		"list",
	)
	var out, errOut bytes.Buffer
	if err := run(context.Background(), memoryConfig(), "", &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"New person added: Alice Tan",
		"Listed all persons",
		"1. Alice Tan",
		"2. Bob Lee",
		"1 persons listed!",
		"1. Bob Lee",
		core.MessageInvalidPersonIndex,
		"1. Orientation; Date: 2024-08-12; Category: PARTICIPANT",
		parser.MessageUnknownCommand,
		"Exiting roster",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if len(script.lines) != 1 {
		t.Fatalf("exit should stop reading, %d lines left", len(script.lines))
	}
	if !script.closed {
		t.Fatalf("line reader not closed")
	}
	if len(script.history) != 12 {
		t.Fatalf("expected 12 history entries, got %d", len(script.history))
	}
}

func TestRunEndsOnEOF(t *testing.T) {
	useScript(t, "help")
	var out bytes.Buffer
	if err := run(context.Background(), memoryConfig(), "", &out, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Aliases:") {
		t.Fatalf("expected help text, got %s", out.String())
	}
}

func TestRunInstallsGroupCapacity(t *testing.T) {
	useScript(t,
		"add n/Alice p/111 e/alice@example.com c/staff g/1",
		"add n/Bob p/222 e/bob@example.com c/staff g/1",
	)
	cfg := memoryConfig()
	cfg.GroupCapacity = 1
	var out bytes.Buffer
	if err := run(context.Background(), cfg, "", &out, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Group 1 is full: 2/1 members") {
		t.Fatalf("expected capacity violation, got %s", out.String())
	}
}

func TestRunRejectsBadStorage(t *testing.T) {
	useScript(t)
	cfg := memoryConfig()
	cfg.StorageDriver = "postgres"
	cfg.PostgresDSN = "postgres://127.0.0.1:1/none?sslmode=disable&connect_timeout=1"
	if err := run(context.Background(), cfg, "", io.Discard, io.Discard); err == nil || !strings.Contains(err.Error(), "open store") {
		t.Fatalf("expected open store error, got %v", err)
	}
}

func TestCLIConfigError(t *testing.T) {
	t.Setenv("ROSTER_STORAGE_DRIVER", "mongo")
	var errOut bytes.Buffer
	if code := cli(nil, io.Discard, &errOut); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(errOut.String(), "ROSTER_STORAGE_DRIVER") {
		t.Fatalf("unexpected stderr %s", errOut.String())
	}
	if code := cli([]string{"-nope"}, io.Discard, io.Discard); code != 2 {
		t.Fatalf("expected flag error exit code 2, got %d", code)
	}
}

func TestCLIRunsSession(t *testing.T) {
	t.Setenv("ROSTER_STORAGE_DRIVER", "memory")
	t.Setenv("ROSTER_BLOB_DRIVER", "memory")
	t.Setenv("ROSTER_LOG_LEVEL", "error")
	useScript(t, "list", "exit")
	var out bytes.Buffer
	if code := cli(nil, &out, io.Discard); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Listed all persons") {
		t.Fatalf("unexpected output %s", out.String())
	}
}

func TestServeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := core.NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	rec.Observe(context.Background(), "add", true, 0)
	addr, stop, err := serveMetrics("127.0.0.1:0", reg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("serve: %v", err)
	}
	defer stop()
	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `roster_commands_total{command="add",status="success"} 1`) {
		t.Fatalf("metrics body missing counter:\n%s", body)
	}
	if _, _, err := serveMetrics(addr, reg, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Fatalf("expected listen error on a bound address")
	}
}
