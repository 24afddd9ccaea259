// Package driver implements the grep-style CLI collaborator around the
// regexgrep core: argument-driven input selection (stdin, files,
// recursive directories), matched-region highlighting, and exit-code
// semantics. None of this is part of the core match contract — spec.md
// explicitly scopes the core down to a single match_regex-shaped call —
// but a complete command-line tool still needs it, built the way the
// retrieved pack's own grep CLIs build it.
//
// Grounded on mabhi256-codecrafters-grep-go's app/main.go for the overall
// stdin/file/recursive-directory shape and exit-code conventions, and
// jackfish212-Shellfish's builtins/grep.go for separating an options
// struct from execution.
package driver

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/coregx/regexgrep"
)

// Exit codes, matching spec.md §6: 0 means some line matched, 1 means no
// line matched anywhere, 2 means the run aborted on a parse or I/O error.
const (
	ExitMatched    = 0
	ExitNoMatch    = 1
	ExitRunFailure = 2
)

// Options configures a single invocation of Run.
type Options struct {
	Pattern   string
	Recursive bool
	Paths     []string // file or directory arguments; empty means read stdin

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes one grep-style invocation and returns the process exit
// code spec.md §6/§7 specifies.
func Run(opts Options) int {
	logger := log.NewWithOptions(opts.Stderr, log.Options{ReportTimestamp: false})

	re, err := regexgrep.Compile(opts.Pattern)
	if err != nil {
		logger.Error("invalid pattern", "pattern", opts.Pattern, "err", err)
		return ExitRunFailure
	}

	highlight := newHighlighter(opts.Stdout)

	if len(opts.Paths) == 0 {
		matched, err := runStdin(opts.Stdin, opts.Stdout, re, highlight)
		if err != nil {
			logger.Error("reading stdin", "err", err)
			return ExitRunFailure
		}
		return exitFor(matched)
	}

	files, err := collectFiles(opts.Paths, opts.Recursive, logger)
	if err != nil {
		logger.Error("collecting files", "err", err)
		return ExitRunFailure
	}

	multiFile := len(files) > 1
	matched, failed := runFiles(files, multiFile, re, highlight, opts.Stdout, logger)
	if failed {
		return ExitRunFailure
	}
	return exitFor(matched)
}

func exitFor(matched bool) int {
	if matched {
		return ExitMatched
	}
	return ExitNoMatch
}

// runStdin reads lines from r one at a time and prints matches to w.
func runStdin(r io.Reader, w io.Writer, re *regexgrep.Regex, highlight *highlighter) (bool, error) {
	scanner := bufio.NewScanner(r)
	matched := false
	for scanner.Scan() {
		line := scanner.Text()
		if m, ok := re.FindString(line); ok {
			matched = true
			fmt.Fprintln(w, highlight.line(line, m))
		}
	}
	return matched, scanner.Err()
}

// collectFiles resolves opts.Paths into a concrete, ordered list of
// regular files to grep, walking directories recursively when recursive
// is true and filtering entries a .gitignore at the walked root excludes.
//
// A missing path or a directory argument given without recursive is an
// I/O error per spec.md §7 ("missing file, unreadable directory without
// -r" abort the invocation), not a skippable entry — it aborts the
// whole collection rather than silently dropping the argument.
func collectFiles(paths []string, recursive bool, logger *log.Logger) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			logger.Error("stat", "path", p, "err", err)
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		if !recursive {
			err := fmt.Errorf("%s: is a directory", p)
			logger.Error("is a directory", "path", p)
			return nil, err
		}

		matcher := loadGitignore(p)
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if matcher != nil {
				if rel, relErr := filepath.Rel(p, path); relErr == nil && matcher.MatchesPath(rel) {
					return nil
				}
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// loadGitignore returns a matcher for root's .gitignore, or nil if none
// exists or it fails to parse (absence of a usable .gitignore is not an
// error — it just means nothing gets filtered).
func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	m, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return m
}

// fileResult holds one file's grep output. Workers write into a results
// slice indexed by each file's original position, so concurrent grepping
// still produces deterministic, in-order output.
type fileResult struct {
	lines   []string
	matched bool
	err     error
}

// runFiles greps files concurrently with a bounded worker pool, then
// flushes results to w in the files' original order — spec.md §5's
// concurrent-caller addition, observably identical to sequential
// processing from the output's point of view.
func runFiles(files []string, multiFile bool, re *regexgrep.Regex, highlight *highlighter, w io.Writer, logger *log.Logger) (matched bool, failed bool) {
	results := make([]fileResult, len(files))
	jobs := make(chan int)
	workers := runtime.GOMAXPROCS(0)
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = grepFile(files[idx], multiFile, re, highlight)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, r := range results {
		if r.err != nil {
			logger.Error("reading file", "path", files[i], "err", r.err)
			failed = true
			continue
		}
		if r.matched {
			matched = true
		}
		for _, line := range r.lines {
			fmt.Fprintln(w, line)
		}
	}
	return matched, failed
}

func grepFile(path string, multiFile bool, re *regexgrep.Regex, highlight *highlighter) fileResult {
	f, err := os.Open(path)
	if err != nil {
		return fileResult{err: err}
	}
	defer f.Close()

	var lines []string
	matched := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		m, ok := re.FindString(line)
		if !ok {
			continue
		}
		matched = true
		rendered := highlight.line(line, m)
		if multiFile {
			rendered = path + ":" + rendered
		}
		lines = append(lines, rendered)
	}
	if err := scanner.Err(); err != nil {
		return fileResult{err: err}
	}
	return fileResult{lines: lines, matched: matched}
}
