package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"rostercore/internal/core"
	"rostercore/internal/parser"
)

const prompt = "roster> "

// lineReader is the prompt surface repl needs; *liner.State provides it.
type lineReader interface {
	Prompt(p string) (string, error)
	AppendHistory(item string)
	Close() error
}

type linerReader struct {
	*liner.State
	historyPath string
}

func newLinerReader(historyPath string) lineReader {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	r := &linerReader{State: st, historyPath: historyPath}
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = st.ReadHistory(f)
			_ = f.Close()
		}
	}
	return r
}

// Close saves history before restoring the terminal.
func (r *linerReader) Close() error {
	if r.historyPath != "" {
		if f, err := os.Create(r.historyPath); err == nil {
			_, _ = r.WriteHistory(f)
			_ = f.Close()
		}
	}
	return r.State.Close()
}

// repl reads commands until exit or end of input.
func repl(ctx context.Context, svc *core.Service, p *parser.Parser, lines lineReader, out io.Writer) error {
	for {
		line, err := lines.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read prompt: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines.AppendHistory(line)

		cmd, err := p.Parse(line)
		if err != nil {
			_, _ = fmt.Fprintln(out, err.Error())
			continue
		}
		res, err := svc.Execute(ctx, cmd)
		if err != nil {
			_, _ = fmt.Fprintln(out, err.Error())
			continue
		}
		_, _ = fmt.Fprintln(out, res.Feedback)
		render(out, svc, cmd.Word())
		if res.Exit {
			return nil
		}
	}
}

// render prints the view a command asks for.
func render(out io.Writer, svc *core.Service, word string) {
	switch word {
	case core.WordList, core.WordFind:
		for i, p := range svc.FilteredPersons() {
			_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, p)
		}
	case core.WordListEvents:
		for i, e := range svc.Events() {
			_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, e)
		}
	}
}
