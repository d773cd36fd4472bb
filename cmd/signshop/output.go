package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
)

func success(w io.Writer, format string, a ...any) {
	_, _ = green.Fprintf(w, "✓ "+format+"\n", a...)
}

func warning(w io.Writer, format string, a ...any) {
	_, _ = yellow.Fprintf(w, "! "+format+"\n", a...)
}

func failure(w io.Writer, err error) {
	_, _ = red.Fprintf(w, "error: %v\n", err)
}

func heading(w io.Writer, format string, a ...any) {
	_, _ = cyan.Fprintf(w, format+"\n", a...)
}

func dim(s string) string {
	return faint.Sprint(s)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
