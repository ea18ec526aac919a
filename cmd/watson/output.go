package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/goliatone/go-watson/core"
)

var (
	faultLabel = color.New(color.FgRed, color.Bold)
	faultHint  = color.New(color.FgYellow)
)

func configureColor(disabled bool) {
	if disabled {
		color.NoColor = true
	}
}

// printFault writes one line with the fault kind and, for protocol faults,
// the HTTP status and the service message.
func printFault(w io.Writer, err error) {
	if err == nil {
		return
	}
	kind := core.FaultKindOf(err)
	_, _ = faultLabel.Fprintf(w, "%s fault", kind)
	if status := core.StatusCodeOf(err); status > 0 {
		_, _ = fmt.Fprintf(w, " (status %d)", status)
	}
	_, _ = fmt.Fprintf(w, ": %s\n", err.Error())
	if names := core.MissingArguments(err); len(names) > 0 {
		_, _ = faultHint.Fprintf(w, "missing: %s\n", strings.Join(names, ", "))
	}
	if serviceErr, ok := core.ServiceErrorOf(err); ok {
		for _, warning := range serviceErr.Warnings {
			_, _ = faultHint.Fprintf(w, "warning: %s\n", warning)
		}
	}
}

// consoleLogger prints call logs to stderr when --verbose is set.
type consoleLogger struct {
	mu     *sync.Mutex
	w      io.Writer
	fields map[string]any
}

func newConsoleLogger(w io.Writer) core.Logger {
	return consoleLogger{mu: &sync.Mutex{}, w: w}
}

var levelColors = map[string]*color.Color{
	"TRACE": color.New(color.FgHiBlack),
	"DEBUG": color.New(color.FgCyan),
	"INFO":  color.New(color.FgGreen),
	"WARN":  color.New(color.FgYellow),
	"ERROR": color.New(color.FgRed),
	"FATAL": color.New(color.FgRed, color.Bold),
}

func (l consoleLogger) log(level, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = levelColors[level].Fprintf(l.w, "%-5s", level)
	_, _ = fmt.Fprintf(l.w, " %s", msg)
	for _, key := range sortedKeys(l.fields) {
		_, _ = fmt.Fprintf(l.w, " %s=%v", key, l.fields[key])
	}
	for i := 0; i+1 < len(args); i += 2 {
		_, _ = fmt.Fprintf(l.w, " %v=%v", args[i], args[i+1])
	}
	_, _ = fmt.Fprintln(l.w)
}

func (l consoleLogger) Trace(msg string, args ...any) { l.log("TRACE", msg, args...) }
func (l consoleLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args...) }
func (l consoleLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args...) }
func (l consoleLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args...) }
func (l consoleLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args...) }
func (l consoleLogger) Fatal(msg string, args ...any) { l.log("FATAL", msg, args...) }

func (l consoleLogger) WithContext(context.Context) core.Logger { return l }

func (l consoleLogger) WithFields(fields map[string]any) core.Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)
	return consoleLogger{mu: l.mu, w: l.w, fields: merged}
}

func sortedKeys(fields map[string]any) []string {
	return slices.Sorted(maps.Keys(fields))
}
