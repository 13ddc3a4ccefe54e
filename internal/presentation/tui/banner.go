package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the rsflow banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Earth tones, top to bottom like a layered section
	lines := []struct {
		text  string
		color string
	}{
		{"                __ _", "#fbbf24"},
		{"  _ __ ___ / _| | _____      __", "#f59e0b"},
		{" | '__/ __| |_| |/ _ \\ \\ /\\ / /", "#d97706"},
		{" | |  \\__ \\  _| | (_) \\ V  V /", "#b45309"},
		{" |_|  |___/_| |_|\\___/ \\_/\\_/", "#92400e"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status colours a short status word: green for ok, red for failures.
func Status(w io.Writer, ok bool, text string) string {
	out := termenv.NewOutput(w)
	color := "#16a34a"
	if !ok {
		color = "#dc2626"
	}
	return out.String(text).Foreground(out.Color(color)).Bold().String()
}
