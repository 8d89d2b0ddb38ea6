package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	blanketinternal "github.com/althonos/blanket/internal/blanket"
)

var Version = "dev"

var (
	oFlag     = flag.String("o", ".blanket.rs", "output file suffix replacing .rs")
	cFlag     = flag.String("c", "auto", "colorize (auto|always|never)")
	vFlag     = flag.Bool("v", false, "verbose logging")
	checkFlag = flag.Bool("check", false, "report outputs which are not up to date instead of writing them")
)

func init() {
	blanketinternal.Version = Version
}

func main() {
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	color := false
	switch *cFlag {
	case "auto":
		color = isatty()
	case "always":
		color = true
	case "never":
		color = false
	default:
		fmt.Fprintln(os.Stderr, "invalid -c value:", *cFlag)
		os.Exit(1)
	}

	log := zap.NewNop()
	if *vFlag {
		if log, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer func() { _ = log.Sync() }()

	outs, err := blanketinternal.Main(context.Background(), wd, log.Sugar(), *oFlag, flag.Args())
	if err != nil {
		message := err.Error()
		if color {
			message = colorize(message)
		}
		fmt.Fprintln(os.Stderr, message)
		os.Exit(1)
	}

	paths := make([]string, 0, len(outs))
	for out := range outs {
		paths = append(paths, out)
	}
	slices.Sort(paths)

	if *checkFlag {
		stale := false
		for _, out := range paths {
			diff, err := blanketinternal.Check(out, outs[out])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if diff != "" {
				stale = true
				if color {
					diff = colorizeDiff(diff)
				}
				fmt.Print(diff)
			}
		}
		if stale {
			os.Exit(1)
		}
		return
	}

	for _, out := range paths {
		if err := os.WriteFile(out, outs[out], 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if relOut, err := filepath.Rel(wd, out); err == nil {
			out = relOut
		}
		fmt.Println("Generated:", out)
	}
}

// isatty reports whether the program is running in a terminal. If it is true,
// we can use ANSI color codes.
func isatty() bool {
	_, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

const (
	red   = "\033[31m"
	green = "\033[32m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

var (
	reTab     = regexp.MustCompile(`(?m)^\t.+`)
	rePos     = regexp.MustCompile(`(?m)^[^\s:]+:\d+:\d+:`)
	reRemoved = regexp.MustCompile(`(?m)^-.*$`)
	reAdded   = regexp.MustCompile(`(?m)^\+.*$`)
)

// colorize adds ANSI color codes to the message.
func colorize(message string) string {
	m := []byte(message)
	m = rePos.ReplaceAllFunc(m, func(b []byte) []byte {
		return []byte(red + string(b) + reset)
	})
	m = reTab.ReplaceAllFunc(m, func(b []byte) []byte {
		return []byte(dim + string(b) + reset)
	})
	return string(m)
}

// colorizeDiff colors removed lines red and added lines green.
func colorizeDiff(diff string) string {
	d := []byte(diff)
	d = reRemoved.ReplaceAllFunc(d, func(b []byte) []byte {
		return []byte(red + string(b) + reset)
	})
	d = reAdded.ReplaceAllFunc(d, func(b []byte) []byte {
		return []byte(green + string(b) + reset)
	})
	return string(d)
}
