package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
)

// runShell reads commands from an interactive prompt until exit or
// end of input. Command errors are reported and the shell goes on. An
// interrupt cancels the running command.
func runShell(s *Session, registry *Registry) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.cfg.Shell.Prompt,
		HistoryFile:     s.cfg.Shell.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintf(s.out, "variantboard %s, playing %s\n", programVersion, s.board.Variant())
	fmt.Fprintf(s.out, "Type 'help' for commands\n\n")

	base := s.ctx
	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			continue
		}

		ctx, cancel := signal.NotifyContext(base, os.Interrupt)
		s.ctx = ctx
		err = registry.Execute(s, line)
		cancel()
		s.ctx = base

		if stderrors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// runBatch executes the commands read from r, one per line. It stops
// at the first failing command, or returns errExit at an exit command.
func runBatch(s *Session, registry *Registry, r io.Reader, name string) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		s.debugf("%s:%d: %s", name, lineNum, line)

		err := registry.Execute(s, line)
		if stderrors.Is(err, errExit) {
			return err
		}
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNum, err)
		}
	}
	return scanner.Err()
}

// runScripts runs each script file in turn on the same session. An
// exit command ends every script.
func runScripts(s *Session, registry *Registry, paths []string) error {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = runBatch(s, registry, f, path)
		f.Close()
		if stderrors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}
