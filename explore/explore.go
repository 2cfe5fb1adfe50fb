// Copyright © 2025 The declnav authors

// Package explore provides an interactive shell over a declaration fixture
// file, for inspecting reference records and target sets without an editor.
package explore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ergochat/readline"

	"github.com/declnav/declnav/docs"
	"github.com/declnav/declnav/fixture"
	"github.com/declnav/declnav/resolve"
	"github.com/declnav/declnav/syntax"
	"github.com/declnav/declnav/telemetry"
)

type config struct {
	stdin     io.ReadCloser
	stderr    io.WriteCloser
	annotator telemetry.Annotator
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the shell.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the shell.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithAnnotator wraps resolution queries run by the shell in trace spans.
func WithAnnotator(a telemetry.Annotator) Option {
	return func(c *config) {
		c.annotator = a
	}
}

// session holds the loaded fixture and the state shared by shell commands.
type session struct {
	path string
	tree *syntax.Tree
	out  io.Writer
	ann  telemetry.Annotator
}

// Run loads the fixture at path and runs the interactive shell until EOF
// or a quit command.
func Run(path string, opts ...Option) error {
	cfg := newConfig(opts...)

	tree, err := fixture.ParseFile(path)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stderr
	if cfg.stderr != nil {
		out = cfg.stderr
	}
	ann := cfg.annotator
	if ann == nil {
		ann = telemetry.NewOpenTelemetryAnnotator(context.Background())
	}
	s := &session{path: path, tree: tree, out: out, ann: ann}

	rlCfg := &readline.Config{
		Stdout:            out,
		Stderr:            out,
		Prompt:            "declnav> ",
		HistoryFile:       historyPath(),
		HistorySearchFold: true,
		AutoComplete:      &commandCompleter{session: s},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	for {
		line, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return nil
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if s.dispatch(string(line)) {
			return nil
		}
	}
}

// dispatch executes one shell command. It reports whether the shell
// should exit.
func (s *session) dispatch(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "quit", "exit":
		return true
	case "help":
		s.printHelp()
	case "format":
		s.outf("%s", docs.FixtureFormat)
	case "decls":
		s.printDecls()
	case "refs":
		s.printRefs()
	case "resolve":
		if len(fields) != 2 {
			s.outf("usage: resolve LINE:COL")
			break
		}
		s.printTargets(fields[1])
	case "reload":
		tree, err := fixture.ParseFile(s.path)
		if err != nil {
			s.outf("reload: %v", err)
			break
		}
		s.tree = tree
		s.outf("reloaded %s", s.path)
	default:
		s.outf("unknown command %q (try help)", fields[0])
	}
	return false
}

func (s *session) printHelp() {
	s.outf("commands:")
	s.outf("  decls              list declarations in the fixture")
	s.outf("  refs               dump reference records in source order")
	s.outf("  resolve LINE:COL   show the target set for the name at a position")
	s.outf("  reload             re-read the fixture from disk")
	s.outf("  format             show the fixture file format reference")
	s.outf("  quit               exit")
}

func (s *session) printDecls() {
	for _, d := range s.tree.Decls {
		if d.Loc.IsValid() {
			s.outf("%-14s %s  (%s)", d.Kind, d.DisplayName(), d.Loc)
		} else {
			s.outf("%-14s %s", d.Kind, d.DisplayName())
		}
	}
}

func (s *session) printRefs() {
	rctx := resolve.NewContext(s.tree)
	var refs []resolve.Reference
	s.ann.CollectReferences(rctx, s.tree.Root, func(r resolve.Reference) {
		refs = append(refs, r)
	})
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].NameLoc.Before(refs[j].NameLoc)
	})
	for _, r := range refs {
		s.outf("%s\t%s\t%s", r.NameLoc, r.Name, r)
	}
}

func (s *session) printTargets(pos string) {
	line, col, err := parsePos(pos)
	if err != nil {
		s.outf("resolve: %v", err)
		return
	}
	node := s.tree.NodeAt(line, col)
	if node == nil {
		s.outf("no name at %d:%d", line, col)
		return
	}
	rctx := resolve.NewContext(s.tree)
	ts := s.ann.Targets(rctx, node)
	s.outf("%s %q resolves to:", node.Kind, node.Name)
	if ts.Empty() {
		s.outf("  (nothing)")
		return
	}
	for _, tgt := range ts.Targets() {
		if tgt.Relations.Empty() {
			s.outf("  %s", tgt.Decl.DisplayName())
		} else {
			s.outf("  %s  %v", tgt.Decl.DisplayName(), tgt.Relations)
		}
	}
}

func parsePos(s string) (line, col int, err error) {
	l, c, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("want LINE:COL, got %q", s)
	}
	line, err1 := strconv.Atoi(l)
	col, err2 := strconv.Atoi(c)
	if err1 != nil || err2 != nil || line < 1 || col < 1 {
		return 0, 0, fmt.Errorf("want LINE:COL, got %q", s)
	}
	return line, col, nil
}

func (s *session) outf(format string, v ...interface{}) {
	fmt.Fprintf(s.out, format+"\n", v...) //nolint:errcheck // best-effort shell output
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".declnav_history")
}
