// Command-line entry point for the weather report decoder.
//
// Reads raw METAR/SPECI/TAF reports, one per line (optionally prefixed
// with the archive "YYYY/MM/DD HH:MM" date), parses them through the
// registry and writes JSON results.
//
// Usage:
//
//	wx_parser extract -input reports.txt [-output out.json] [-pretty] [-source NOAA_METAR] [-stats]
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"noakweather/internal/parsers/metar"
	"noakweather/internal/parsers/taf"
	"noakweather/internal/registry"
	"noakweather/internal/wx"
)

// ExtractOut pairs a raw input line with its parse result.
type ExtractOut struct {
	Raw    string    `json:"raw"`
	Report wx.Report `json:"report,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// Stats holds basic run counters.
type Stats struct {
	Lines   int
	Parsed  int
	Failed  int
	Skipped int
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "wx_parser - commands:")
	fmt.Fprintln(w, "  extract  - parse raw reports and output JSON")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wx_parser extract -input reports.txt [-output out.json] [-pretty] [-source TYPE] [-stats]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - Input is one report per line; blank lines are skipped.")
	fmt.Fprintln(w, "  - Without -source, the source type is auto-detected per line.")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	switch cmd := strings.ToLower(os.Args[1]); cmd {
	case "extract":
		runExtract(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	inPath := fs.String("input", "", "Input file with one raw report per line (default: stdin)")
	outPath := fs.String("output", "", "Output JSON file (default: stdout)")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	source := fs.String("source", "", "Force a source type instead of auto-detecting")
	showStats := fs.Bool("stats", false, "Print basic counters to stderr")
	verbose := fs.Bool("v", false, "Log element decode warnings")
	_ = fs.Parse(args)

	logLevel := zerolog.ErrorLevel
	if *verbose {
		logLevel = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(logLevel).With().Timestamp().Logger()

	// A local registry so element decode warnings go through the
	// configured logger; the package-level default stays silent.
	reg := registry.New()
	reg.Register(metar.New(log))
	reg.Register(taf.New(log))

	var r io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}

	out := make([]ExtractOut, 0, 1024)
	st := &Stats{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		st.Lines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			st.Skipped++
			continue
		}

		var report wx.Report
		var err error
		if *source != "" {
			report, err = reg.Parse(line, *source)
		} else {
			report, err = reg.ParseAuto(line)
		}

		res := ExtractOut{Raw: line, Report: report}
		if err != nil {
			res.Error = err.Error()
			st.Failed++
		} else {
			st.Parsed++
		}
		out = append(out, res)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		os.Exit(1)
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Encode error: %v\n", err)
		os.Exit(1)
	}

	if *showStats {
		fmt.Fprintf(os.Stderr, "lines=%d parsed=%d failed=%d skipped=%d\n",
			st.Lines, st.Parsed, st.Failed, st.Skipped)
	}
}
