// Command cfgparse is a small front end for the cfgparser library: load a
// grammar source file, check membership of words, and print a grammar in
// its original or Chomsky-normal-form shape.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	cfgparser "github.com/wylyK/cfg-parser"
	"github.com/wylyK/cfg-parser/internal/config"
	"github.com/wylyK/cfg-parser/internal/gramtext"
)

var (
	grammarFlag string
	traceFlag   string
	cfg         config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cfgparse",
		Short: "Normalize context-free grammars and test word membership",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			home, _ := os.UserHomeDir()
			loaded, err := config.Load(filepath.Join(home, ".cfgparse.toml"))
			if err != nil {
				return err
			}
			cfg = loaded
			if traceFlag != "" {
				cfg.TraceLevel = traceFlag
			}
			if grammarFlag == "" {
				grammarFlag = cfg.GrammarFile
			}
			cfgparser.SetTraceLevel(tracing.TraceLevelFromString(cfg.TraceLevel))
			if !cfg.Color {
				pterm.DisableColor()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&grammarFlag, "grammar", "g", "", "grammar source file")
	root.PersistentFlags().StringVarP(&traceFlag, "trace", "t", "", "trace level [Debug|Info|Error]")

	root.AddCommand(newParseCmd())
	root.AddCommand(newParseFileCmd())
	root.AddCommand(newPrintCmd())
	root.AddCommand(newPrintNormalizedCmd())
	root.AddCommand(newReplCmd())
	return root
}

// loadParser opens the grammar source named by the --grammar flag (or the
// config file's default) and builds a Parser from it.
func loadParser() (*cfgparser.Parser, error) {
	if grammarFlag == "" {
		return nil, fmt.Errorf("cfgparse: no grammar file given (use --grammar or grammar_file in .cfgparse.toml)")
	}
	f, err := os.Open(grammarFlag)
	if err != nil {
		return nil, fmt.Errorf("cfgparse: %w", err)
	}
	defer f.Close()

	p := cfgparser.NewParser()
	if _, err := gramtext.Load(p, f); err != nil {
		return nil, fmt.Errorf("cfgparse: loading %q: %w", grammarFlag, err)
	}
	return p, nil
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse NAME WORD",
		Short: "Report whether WORD is in the language of grammar NAME",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadParser()
			if err != nil {
				return err
			}
			ok, err := p.Parse(args[0], args[1])
			if err != nil {
				return err
			}
			if ok {
				pterm.Success.Printfln("%s accepts %q", args[0], args[1])
			} else {
				pterm.Warning.Printfln("%s rejects %q", args[0], args[1])
			}
			return nil
		},
	}
}

func newParseFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-file NAME PATH",
		Short: "Report acceptance for every line (word) in PATH",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadParser()
			if err != nil {
				return err
			}
			return p.ParseFile(args[0], args[1], os.Stdout)
		},
	}
}

func newPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print NAME",
		Short: "Print the grammar registered under NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadParser()
			if err != nil {
				return err
			}
			out, err := p.Print(args[0])
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newPrintNormalizedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print-normalized NAME",
		Short: "Print the Chomsky-normal-form grammar equivalent to NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadParser()
			if err != nil {
				return err
			}
			out, err := p.PrintNormalized(args[0])
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}
