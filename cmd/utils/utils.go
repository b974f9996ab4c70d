package utils

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	headers "github.com/DanielCharczynski/finagle"
	"github.com/remeh/sizedwaitgroup"
	"github.com/spf13/cobra"
)

// GetThreadsFlag extracts the threads flag value from a cobra command
// Cobra already validates that it's a valid integer, but we still check for errors
func GetThreadsFlag(cmd *cobra.Command) int {
	threads, err := cmd.Flags().GetInt("threads")
	if err != nil {
		// This should never happen if the flag is properly defined, so it's a programming error
		slog.Error("failed to get threads flag - this indicates a programming error", "err", err.Error())
		os.Exit(1)
	}
	return threads
}

// LoadHeaderFile reads a file of "Name: value" lines into hm, one Add per
// line. Blank lines and lines starting with '#' are skipped. This is plain
// line splitting for tooling convenience, not HTTP message parsing: no
// continuation lines, no validation of names or values. Failures are
// returned, not logged; reporting is the caller's job.
func LoadHeaderFile(filepath string, hm *headers.HeaderMap) error {
	f, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filepath, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, value, found := strings.Cut(line, ":")
		if !found {
			return fmt.Errorf("%s:%d: missing ':' separator", filepath, lineno)
		}

		hm.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", filepath, err)
	}

	slog.Debug("loaded header file", "file", filepath, "lines", lineno, "names", hm.Length())
	return nil
}

// LoadHeaderFiles loads every file into hm, at most threads files at a
// time. HeaderMap serializes its mutations, so per-file loads can overlap
// safely; relative value order is only deterministic within one file.
func LoadHeaderFiles(files []string, threads int, hm *headers.HeaderMap) error {
	swg := sizedwaitgroup.New(threads)
	errs := make([]error, len(files))

	for i, filepath := range files {
		swg.Add()
		go func(i int, filepath string) {
			defer swg.Done()
			errs[i] = LoadHeaderFile(filepath, hm)
		}(i, filepath)
	}
	swg.Wait()

	return errors.Join(errs...)
}
