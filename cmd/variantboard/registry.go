package main

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// errExit is returned by the exit command to end the shell loop.
var errExit = stderrors.New("exit")

// Command defines a shell command with its handler.
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(*Session, []string) error
}

// Registry maps command names and short names to commands.
type Registry struct {
	commands map[string]*Command
	order    []*Command
}

// NewRegistry returns a registry holding every shell command.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]*Command)}

	r.registerBoardCommands()
	r.registerAnalysisCommands()
	r.registerBookCommands()
	r.registerExportCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     r.helpHandler,
	})
	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Leave the shell",
		Usage:       "exit",
		Handler:     func(*Session, []string) error { return errExit },
	})
	r.commands["quit"] = r.commands["exit"]

	return r
}

// Register adds cmd under its name and short name.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
	r.order = append(r.order, cmd)
}

// Lookup returns the command named name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Execute runs one input line. Blank lines and lines starting with
// '#' are ignored.
func (r *Registry) Execute(s *Session, input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
		return nil
	}

	cmd, ok := r.Lookup(parts[0])
	if !ok {
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", parts[0])
	}
	return cmd.Handler(s, parts[1:])
}

func (r *Registry) helpHandler(s *Session, args []string) error {
	if len(args) > 0 {
		cmd, ok := r.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(s.out, "%s - %s\n", cmd.Name, cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(s.out, "Short form: %s\n", cmd.ShortName)
		}
		fmt.Fprintf(s.out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	fmt.Fprintln(s.out, "Available commands:")
	for _, cmd := range r.order {
		short := ""
		if cmd.ShortName != "" {
			short = "[" + cmd.ShortName + "]"
		}
		fmt.Fprintf(s.out, "  %-4s %-10s %s\n", short, cmd.Name, cmd.Description)
	}
	fmt.Fprintln(s.out, "\nType 'help <command>' for detailed usage")
	return nil
}
