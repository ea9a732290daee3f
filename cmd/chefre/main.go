/*
Chefre compiles a regular expression and matches input lines against it.

The single argument is the regex, in the basic notation understood by the
toolkit: literals, '(' ')' grouping, '|' alternation, '*' Kleene closure, and
backslash escapes. With --nfa the compiled NFA is printed instead of
matching; its edge-list section is in the format chefuml reads.

Usage:

	chefre [flags] PATTERN

The flags are:

	-v, --version
		Give the current version of chef and then exit.

	-n, --nfa
		Print the symbol mapping, final states, and transition edge list of
		the compiled NFA, then exit. The edge list can be piped into chefuml.

	-e, --engine ENGINE
		Which engine matches the input lines: "dfa" (the default; compiles
		the regex to a minimal DFA once) or "derivative" (evaluates each
		line by Brzozowski derivatives).

	-d, --direct
		Force reading directly from stdin as opposed to using GNU readline
		based routines for reading input even if launched in a tty.

In matching mode each line read from stdin is matched in full against the
pattern and "match" or "no match" is printed per line.
*/
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/chzyer/readline"
	"github.com/dekarrin/chef/internal/util"
	"github.com/dekarrin/chef/internal/version"
	"github.com/dekarrin/chef/re"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates an unsuccessful program execution due to a
	// problem with the given flags or pattern.
	ExitUsageError

	// ExitIOError indicates an unsuccessful program execution due to an
	// issue reading input.
	ExitIOError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	flagNFA     *bool   = pflag.BoolP("nfa", "n", false, "Print the compiled NFA instead of matching")
	flagEngine  *string = pflag.StringP("engine", "e", "dfa", "Matching engine, `dfa` or `derivative`")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: chefre [flags] PATTERN\n")
		returnCode = ExitUsageError
		return
	}

	rx, err := re.Parse(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: bad pattern: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	if *flagNFA {
		if err := printNFA(rx); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitUsageError
		}
		return
	}

	var match func(line string) (bool, error)
	switch *flagEngine {
	case "dfa":
		m, err := re.Compile(rx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitUsageError
			return
		}
		match = func(line string) (bool, error) {
			return m.Match(line), nil
		}
	case "derivative":
		match = func(line string) (bool, error) {
			return re.Matches(rx, line)
		}
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown engine %q\n", *flagEngine)
		returnCode = ExitUsageError
		return
	}

	if err := matchLines(match); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitIOError
		return
	}
}

// printNFA writes the symbol mapping, final states, and edge list of the
// regex's compiled NFA to stdout.
func printNFA(rx re.Regex) error {
	conv, err := re.ToNFA(rx)
	if err != nil {
		return err
	}

	fmt.Printf("Symbol mapping:\n")
	for _, c := range util.OrderedKeys(conv.SymbolMap) {
		fmt.Printf("\t%c --> %d\n", c, conv.SymbolMap[c])
	}
	fmt.Printf("\n")

	accepts := conv.Accepts.Elements()
	sort.Slice(accepts, func(i, j int) bool {
		return accepts[i] < accepts[j]
	})

	fmt.Printf("Final states:")
	sep := " "
	for _, accept := range accepts {
		fmt.Printf("%s%d", sep, accept)
		sep = ","
	}
	fmt.Printf("\n\n")

	fmt.Printf("Transition table:\n")
	for _, from := range conv.NFA.States() {
		for _, sym := range conv.NFA.Symbols() {
			for _, to := range conv.NFA.Process(from, sym) {
				fmt.Printf("%d %d %d\n", from, to, sym)
			}
		}
	}

	return nil
}

// matchLines reads lines of input and prints whether each one matches. It
// goes through readline when stdin is interactive, unless --direct was
// given.
func matchLines(match func(line string) (bool, error)) error {
	nextLine, closeInput, err := lineReader()
	if err != nil {
		return err
	}
	defer closeInput()

	for {
		line, err := nextLine()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}

		matched, err := match(line)
		if err != nil {
			return err
		}

		if matched {
			fmt.Println("match")
		} else {
			fmt.Println("no match")
		}
	}
}

func lineReader() (next func() (string, error), done func(), err error) {
	stat, statErr := os.Stdin.Stat()
	interactive := statErr == nil && (stat.Mode()&os.ModeCharDevice) != 0

	if interactive && !*forceDirect {
		rl, err := readline.New("> ")
		if err == nil {
			return rl.Readline, func() { rl.Close() }, nil
		}
		// fall through to direct reading if readline cannot initialize
	}

	scanner := bufio.NewScanner(os.Stdin)
	next = func() (string, error) {
		if !scanner.Scan() {
			if scanner.Err() != nil {
				return "", scanner.Err()
			}
			return "", io.EOF
		}
		return scanner.Text(), nil
	}
	return next, func() {}, nil
}
