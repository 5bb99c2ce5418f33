package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"apicompat/internal/chain"
	"apicompat/internal/config"
	"apicompat/internal/diff"
	"apicompat/internal/loader"
	"apicompat/internal/report"
)

// command describes a CLI subcommand.
type command struct {
	name  string
	short string
	usage string
	long  string
	run   func(args []string) error
}

var commands = []command{
	{
		name:  "compare",
		short: "Compare two contract documents for breaking changes",
		usage: "apicompat compare <oldSpec> <newSpec>",
		long: `Load two OpenAPI contract documents, diff them structurally, and print
a migration report to stdout.

Exits 1 if any CRITICAL breaking change is found.
`,
		run: runCompare,
	},
	{
		name:  "validate-all",
		short: "Validate every transition in the configured version chain",
		usage: "apicompat validate-all",
		long: `Compare each adjacent pair in the version chain and print a
transition-by-transition summary.

The chain and spec directory come from .apicompat.yaml when present
(run 'apicompat init' to create it); otherwise the default chain
v1..v4 under api-specs/ is used. Each version's contract is expected
at <specRoot>/<version>/current/openapi.yaml.

A version whose contract is missing or unparseable skips its
transitions with a warning. Exits 1 if any transition has CRITICAL
changes.
`,
		run: runValidateAll,
	},
	{
		name:  "migration-report",
		short: "Write a migration report for one version transition",
		usage: "apicompat migration-report <fromVersion> <toVersion>",
		long: `Resolve both version labels through the configured version-directory
convention, compare them, and write the rendered report to
api-migration-report-<from>-to-<to>.md in the working directory.

The report is also printed to stdout.
`,
		run: runMigrationReport,
	},
	{
		name:  "init",
		short: "Create .apicompat.yaml in the working directory",
		usage: "apicompat init",
		long: `Interactively configure apicompat for this project: prompts for the
spec root directory and the ordered version chain, then writes
.apicompat.yaml.

Errors if the file already exists.
`,
		run: runInit,
	},
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "apicompat — API contract compatibility checker\n\n")
	fmt.Fprintf(w, "Usage:\n  apicompat <command> [arguments]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-18s %s\n", cmd.name, cmd.short)
	}
	fmt.Fprintf(w, "\nRun 'apicompat help <command>' for details on a specific command.\n")
}

func printCommandHelp(w io.Writer, name string) {
	for _, cmd := range commands {
		if cmd.name == name {
			fmt.Fprintf(w, "Usage: %s\n\n%s", cmd.usage, cmd.long)
			return
		}
	}
	fmt.Fprintf(w, "apicompat: unknown command %q\n\nRun 'apicompat help' for usage.\n", name)
}

func dispatch(args []string) error {
	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		printUsage(os.Stdout)
		return nil
	}
	if args[0] == "help" {
		if len(args) >= 2 {
			printCommandHelp(os.Stdout, args[1])
		} else {
			printUsage(os.Stdout)
		}
		return nil
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(args[1:])
		}
	}
	return fmt.Errorf("unknown command %q\n\nRun 'apicompat help' for usage.", args[0])
}

// ---------------------------------------------------------------------------
// compare
// ---------------------------------------------------------------------------

func runCompare(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: apicompat compare <oldSpec> <newSpec>")
	}
	old, err := loader.Load(args[0])
	if err != nil {
		return err
	}
	new, err := loader.Load(args[1])
	if err != nil {
		return err
	}

	res := diff.Compare(old, new)
	rep := report.Generate(res, args[0], args[1], time.Now())
	fmt.Print(rep.Render())

	if rep.ExitCode() != 0 {
		return fmt.Errorf("critical breaking changes detected")
	}
	return nil
}

// ---------------------------------------------------------------------------
// validate-all
// ---------------------------------------------------------------------------

func runValidateAll(args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	v := chain.Validator{
		Versions: cfg.Chain(),
		Resolve:  chain.Resolver(cfg.Root()),
	}
	res := v.Validate()
	if len(res.Transitions) == 0 {
		return fmt.Errorf("version chain %v has no transitions to validate", v.Versions)
	}

	for _, t := range res.Transitions {
		label := fmt.Sprintf("%s → %s", t.From, t.To)
		switch {
		case t.Skipped:
			fmt.Printf("%s: SKIPPED\n", label)
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %s\n", label, t.SkipReason)
		case t.Passed():
			fmt.Printf("%s: PASS\n", label)
		default:
			fmt.Printf("%s: FAIL (%d critical)\n", label, t.Criticals())
		}
	}

	if !res.Passed() {
		fmt.Printf("overall: FAILED (%d critical across %d transitions)\n",
			res.Criticals(), len(res.Transitions))
		return fmt.Errorf("critical breaking changes detected in version chain")
	}
	if n := res.Skipped(); n > 0 {
		fmt.Printf("overall: PASSED (%d transition(s) skipped)\n", n)
	} else {
		fmt.Printf("overall: PASSED\n")
	}
	return nil
}

// ---------------------------------------------------------------------------
// migration-report
// ---------------------------------------------------------------------------

func runMigrationReport(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: apicompat migration-report <fromVersion> <toVersion>")
	}
	from, to := args[0], args[1]

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	resolve := chain.Resolver(cfg.Root())

	old, err := loader.Load(resolve(from))
	if err != nil {
		return err
	}
	new, err := loader.Load(resolve(to))
	if err != nil {
		return err
	}

	res := diff.Compare(old, new)
	rep := report.Generate(res, from, to, time.Now())

	outFile := fmt.Sprintf("api-migration-report-%s-to-%s.md", from, to)
	if err := rep.WriteFile(outFile); err != nil {
		return err
	}
	fmt.Print(rep.Render())
	fmt.Printf("report written to %s\n", outFile)
	return nil
}

// ---------------------------------------------------------------------------
// init
// ---------------------------------------------------------------------------

// question is a single interactive configuration prompt.
type question struct {
	key    string
	prompt string
}

func runInit(args []string) error {
	if _, err := os.Stat(config.Path(".")); err == nil {
		return fmt.Errorf("%s already exists", config.FileName)
	}

	answers, err := promptQuestions([]question{
		{key: "specRoot", prompt: fmt.Sprintf("Spec root directory (default %s)", config.DefaultSpecRoot)},
		{key: "versions", prompt: "Version chain, comma-separated (default v1,v2,v3,v4)"},
	})
	if err != nil {
		return fmt.Errorf("prompt: %w", err)
	}

	s := config.Settings{SpecRoot: answers["specRoot"]}
	if raw := answers["versions"]; raw != "" {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				s.Versions = append(s.Versions, v)
			}
		}
	}
	if err := s.Save("."); err != nil {
		return err
	}
	fmt.Printf("created %s (spec root %q, chain %v)\n", config.FileName, s.Root(), s.Chain())
	return nil
}

// ---------------------------------------------------------------------------
// TUI prompt helpers
// ---------------------------------------------------------------------------

// promptModel is a bubbletea model that asks one question at a time.
type promptModel struct {
	questions []question
	idx       int
	inputs    []textinput.Model
	done      bool
}

func newPromptModel(questions []question) promptModel {
	inputs := make([]textinput.Model, len(questions))
	for i, q := range questions {
		ti := textinput.New()
		ti.Placeholder = q.prompt
		ti.CharLimit = 512
		inputs[i] = ti
	}
	m := promptModel{
		questions: questions,
		inputs:    inputs,
	}
	if len(inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.idx < len(m.inputs)-1 {
				m.inputs[m.idx].Blur()
				m.idx++
				m.inputs[m.idx].Focus()
				return m, textinput.Blink
			}
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.inputs[m.idx], cmd = m.inputs[m.idx].Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || len(m.questions) == 0 {
		return ""
	}
	q := m.questions[m.idx]
	return fmt.Sprintf("%s: %s\n", q.prompt, m.inputs[m.idx].View())
}

// promptQuestions runs the TUI and returns answers keyed by question.key.
func promptQuestions(questions []question) (map[string]string, error) {
	if len(questions) == 0 {
		return map[string]string{}, nil
	}
	m := newPromptModel(questions)
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return nil, err
	}
	final, ok := result.(promptModel)
	if !ok || !final.done {
		return nil, fmt.Errorf("prompt cancelled")
	}
	answers := make(map[string]string, len(questions))
	for i, q := range questions {
		answers[q.key] = final.inputs[i].Value()
	}
	return answers, nil
}

func main() {
	if err := dispatch(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
