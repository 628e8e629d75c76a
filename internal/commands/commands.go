package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd "

// ErrUnknown is returned by Execute for a name that was never registered.
var ErrUnknown = errors.New("commands: unknown command")

// Command is a subcommand with its own flags and a Run function.
// Run receives the positional arguments left after flag parsing.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a FlagSet that reports errors instead of exiting and prints nothing.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. fs may be nil for commands without flags.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func(args []string) error) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names lists registered commands in alphabetical order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Usage returns the usage line of name, or "" when unknown.
func (r *Registry) Usage(name string) string {
	if c, ok := r.cmds[name]; ok {
		return c.Usage
	}
	return ""
}

// Parse interprets line as a console line. If line starts with "cmd " the rest is tokenized by
// spaces and returned with ok true. Otherwise nil, false.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Flags are reset to their defaults before every run.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("commands: missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	cmd.FlagSet.VisitAll(func(f *flag.Flag) {
		_ = f.Value.Set(f.DefValue)
	})
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("commands: %s: %w", name, err)
	}
	return cmd.Run(cmd.FlagSet.Args())
}

// Run parses a full console line and executes it. Lines without the "cmd " prefix return
// handled false and no error.
func (r *Registry) Run(line string) (handled bool, err error) {
	args, ok := Parse(strings.TrimSpace(line) + " ")
	if !ok {
		return false, nil
	}
	return true, r.Execute(args)
}
