// Package shell is the interactive terminal front end: a menu-driven loop
// over the Dashboard, Add Candidate and Search views.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/talent-search/internal/ingestion"
	"github.com/jonathan/talent-search/internal/logging"
	"github.com/jonathan/talent-search/internal/observability"
	"github.com/jonathan/talent-search/internal/types"
	"github.com/jonathan/talent-search/internal/workspace"
	"github.com/sirupsen/logrus"
)

// endOfText terminates a multi-line resume.
const endOfText = "."

// Menu is printed before every selection.
const Menu = `
Talent Search
  1) Dashboard
  2) Add Candidate
  3) Search
  q) Quit`

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Shell) {
		if l != nil {
			s.log = l
		}
	}
}

// WithURLOptions configures how "url" sources in the Add view are fetched.
func WithURLOptions(opts ingestion.URLOptions) Option {
	return func(s *Shell) {
		s.urlOptions = opts
	}
}

// Shell drives a workspace.Controller from line-oriented input.
type Shell struct {
	ctrl       *workspace.Controller
	in         *bufio.Scanner
	out        io.Writer
	printer    *observability.Printer
	urlOptions ingestion.URLOptions
	log        logrus.FieldLogger
}

// New returns a shell reading commands from in and writing to out.
func New(ctrl *workspace.Controller, in io.Reader, out io.Writer, opts ...Option) *Shell {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), ingestion.MaxFileSize)
	s := &Shell{
		ctrl:    ctrl,
		in:      scanner,
		out:     out,
		printer: observability.NewPrinter(out),
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("component", "shell")
	return s
}

// Run loops until the user quits, input ends or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.println(Menu)
		choice, err := s.prompt("> ")
		if err != nil {
			return nil
		}

		switch strings.ToLower(choice) {
		case "1", "dashboard", "d":
			err = s.dashboard(ctx)
		case "2", "add", "a":
			err = s.add(ctx)
		case "3", "search", "s":
			err = s.search(ctx)
		case "q", "quit", "exit":
			return nil
		case "":
			continue
		default:
			s.println(fmt.Sprintf("Unknown option %q.", choice))
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Confirm asks a yes/no question; anything but y or yes declines.
func (s *Shell) Confirm(message string) bool {
	answer, err := s.prompt(message + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (s *Shell) dashboard(ctx context.Context) error {
	s.ctrl.Navigate(ctx, workspace.ViewDashboard)

	for {
		recent := s.ctrl.Recent()
		s.printer.PrintDashboard(s.ctrl.Stats(), recent)
		if len(recent) == 0 {
			return nil
		}

		answer, err := s.prompt("Number to remove, or Enter to go back: ")
		if err != nil {
			return err
		}
		if answer == "" {
			return nil
		}
		n, convErr := strconv.Atoi(answer)
		if convErr != nil || n < 1 || n > len(recent) {
			s.println(fmt.Sprintf("Pick a number between 1 and %d.", len(recent)))
			continue
		}

		candidate := recent[n-1]
		err = s.ctrl.Delete(ctx, candidate.ID, s)
		switch {
		case errors.Is(err, workspace.ErrNotConfirmed):
			s.println("Kept " + candidate.FullName + ".")
		case err != nil:
			s.log.WithError(err).WithField("candidate_id", candidate.ID).Warn("delete failed")
			s.println("Failed to remove candidate: " + err.Error())
		default:
			s.println("Removed " + candidate.FullName + ".")
		}
	}
}

func (s *Shell) add(ctx context.Context) error {
	s.ctrl.Navigate(ctx, workspace.ViewAddCandidate)

	s.println("Paste the resume text and finish with a line containing only \".\".")
	s.println("Or type: sample | file <path> | url <address>")
	text, err := s.readBlock()
	if err != nil {
		return err
	}

	if err := s.loadInput(ctx, text); err != nil {
		s.println("Could not read resume: " + err.Error())
		return nil
	}

	for {
		s.println("Analyzing resume...")
		draft, err := s.ctrl.Analyze(ctx)
		switch {
		case errors.Is(err, workspace.ErrEmptyInput):
			s.println("Nothing to analyze.")
			return nil
		case err != nil:
			s.println(workspace.AnalyzeFailedMessage)
			retry, err := s.askRetry()
			if err != nil || !retry {
				return err
			}
			continue
		}
		return s.review(ctx, draft)
	}
}

// askRetry offers to analyze the kept input again. Going back leaves the
// input in place so the next paste of an empty block reuses it.
func (s *Shell) askRetry() (bool, error) {
	for {
		answer, err := s.prompt("[r]etry or [b]ack: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "r", "retry":
			return true, nil
		case "b", "back", "":
			return false, nil
		}
	}
}

// review shows a fresh draft and asks whether to keep it.
func (s *Shell) review(ctx context.Context, draft *types.CandidateDraft) error {
	s.printer.PrintDraft(draft)
	for {
		answer, err := s.prompt("[s]ave or [d]iscard: ")
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "s", "save":
			record, err := s.ctrl.Save(ctx)
			if err != nil {
				s.log.WithError(err).Warn("save failed")
				s.println("Failed to save candidate: " + err.Error())
				return nil
			}
			s.println(workspace.SavedMessage)
			s.printer.PrintCandidate(record)
			return nil
		case "d", "discard":
			s.ctrl.Discard()
			s.println("Draft discarded.")
			return nil
		}
	}
}

// loadInput fills the Add view input from pasted text or a named source.
func (s *Shell) loadInput(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	command, arg, _ := strings.Cut(trimmed, " ")
	arg = strings.TrimSpace(arg)

	switch {
	case trimmed == "sample":
		s.ctrl.InsertSampleText()
		s.println(workspace.SampleResumeText)
	case command == "file" && arg != "" && !strings.Contains(trimmed, "\n"):
		cleaned, _, err := ingestion.IngestFromFile(arg)
		if err != nil {
			return err
		}
		s.ctrl.SetInput(cleaned)
	case command == "url" && arg != "" && !strings.Contains(trimmed, "\n"):
		cleaned, _, err := ingestion.IngestFromURL(ctx, arg, s.urlOptions)
		if err != nil {
			return err
		}
		s.ctrl.SetInput(cleaned)
	case trimmed == "" && strings.TrimSpace(s.ctrl.State().Add.Input) != "":
		s.println("Using the previous resume text.")
	default:
		s.ctrl.SetInput(text)
	}
	return nil
}

func (s *Shell) search(ctx context.Context) error {
	s.ctrl.Navigate(ctx, workspace.ViewSearch)

	query, err := s.prompt("Describe the ideal candidate: ")
	if err != nil {
		return err
	}

	s.println("AI is analyzing candidates against your criteria...")
	results, err := s.ctrl.Search(ctx, query)
	if errors.Is(err, workspace.ErrEmptyQuery) {
		s.println(observability.SearchPromptMessage)
		return nil
	}
	if err != nil {
		s.println("Search failed: " + err.Error())
		return nil
	}
	s.printer.PrintSearchResults(results)
	return nil
}

// readBlock reads lines until a terminator line. A first line that is a
// source command ends the block on its own.
func (s *Shell) readBlock() (string, error) {
	var lines []string
	for s.in.Scan() {
		line := s.in.Text()
		if strings.TrimSpace(line) == endOfText {
			return strings.Join(lines, "\n"), nil
		}
		if len(lines) == 0 && isSourceCommand(line) {
			return strings.TrimSpace(line), nil
		}
		lines = append(lines, line)
	}
	if err := s.in.Err(); err != nil {
		return "", err
	}
	if len(lines) > 0 {
		return strings.Join(lines, "\n"), nil
	}
	return "", io.EOF
}

func isSourceCommand(line string) bool {
	line = strings.TrimSpace(line)
	return line == "sample" || strings.HasPrefix(line, "file ") || strings.HasPrefix(line, "url ")
}

func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label) //nolint:errcheck // terminal output
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line) //nolint:errcheck // terminal output
}
