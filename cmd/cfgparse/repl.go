package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	cfgparser "github.com/wylyK/cfg-parser"
	"github.com/wylyK/cfg-parser/internal/gramtext"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively load grammars and test membership",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newRepl()
			if grammarFlag != "" {
				if err := r.load(grammarFlag); err != nil {
					pterm.Error.Println(err.Error())
				}
			}
			return r.run()
		},
	}
}

// repl holds the state of one interactive session: a single Parser that
// every "load" command adds grammars into.
type repl struct {
	parser *cfgparser.Parser
	rl     *readline.Instance
}

func newRepl() *repl {
	return &repl{parser: cfgparser.NewParser()}
}

func (r *repl) run() error {
	rl, err := readline.New("cfgparse> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	r.rl = rl

	pterm.Info.Println("Welcome to cfgparse. Type 'help' for commands, ctrl-D to quit.")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on ctrl-D, readline.ErrInterrupt on ctrl-C
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := r.eval(line); quit {
			break
		}
	}
	pterm.Info.Println("Goodbye.")
	return nil
}

func (r *repl) eval(line string) (quit bool) {
	fields := strings.Fields(line)
	cmd, rest := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		r.help()
	case "load":
		if len(rest) != 1 {
			pterm.Error.Println("usage: load PATH")
			return false
		}
		if err := r.load(rest[0]); err != nil {
			pterm.Error.Println(err.Error())
		}
	case "parse":
		if len(rest) != 2 {
			pterm.Error.Println("usage: parse NAME WORD")
			return false
		}
		ok, err := r.parser.Parse(rest[0], rest[1])
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		if ok {
			pterm.Success.Printfln("%s accepts %q", rest[0], rest[1])
		} else {
			pterm.Warning.Printfln("%s rejects %q", rest[0], rest[1])
		}
	case "print":
		if len(rest) != 1 {
			pterm.Error.Println("usage: print NAME")
			return false
		}
		out, err := r.parser.Print(rest[0])
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		fmt.Print(out)
	case "print-normalized":
		if len(rest) != 1 {
			pterm.Error.Println("usage: print-normalized NAME")
			return false
		}
		out, err := r.parser.PrintNormalized(rest[0])
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		fmt.Print(out)
	default:
		pterm.Error.Printfln("unknown command %q, type 'help'", cmd)
	}
	return false
}

func (r *repl) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	names, err := gramtext.Load(r.parser, f)
	if err != nil {
		return err
	}
	pterm.Info.Printfln("loaded %d grammar(s) from %s: %s", len(names), path, strings.Join(names, ", "))
	return nil
}

func (r *repl) help() {
	pterm.Println(strings.TrimSpace(`
commands:
  load PATH                  load a grammar source file
  parse NAME WORD            test whether WORD is in the language of NAME
  print NAME                 print the grammar registered under NAME
  print-normalized NAME      print the Chomsky-normal-form grammar for NAME
  help                       show this message
  quit | exit                leave the REPL
`))
}
