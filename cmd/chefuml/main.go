/*
Chefuml reads a finite automaton and writes it out as a PlantUML state
diagram.

It reads an NFA edge list from stdin, three unsigned integers per line:

	from to symbol

where symbol 0 is the ε symbol. The output document can be piped into
plantuml to render a picture of the machine.

Usage:

	chefuml [flags] <input.txt >diagram.uml

The flags are:

	-v, --version
		Give the current version of chef and then exit.

	-d, --dfa
		Convert the NFA to a DFA with subset construction before emitting.

	-m, --minimize
		Minimize the DFA before emitting. Only valid together with --dfa.

	-f, --final STATES
		Comma-separated list of final states of the input NFA. They are
		tracked as a category through conversion and minimization, and the
		final states of the emitted machine are labeled "final".

	-l, --labels FILE
		A TOML file with a [labels] table mapping state numbers to display
		labels for the emitted states. Only applied when emitting the NFA
		itself; converted machines have different state numbers.

Sample usage:

	printf '0 1 1\n1 0 1\n' | chefuml --dfa --final 1 | java -jar plantuml.jar -pipe >dfa.png
*/
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/chef/automaton"
	"github.com/dekarrin/chef/internal/util"
	"github.com/dekarrin/chef/internal/version"
	"github.com/dekarrin/chef/plantuml"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates an unsuccessful program execution due to a
	// problem with the given flags.
	ExitUsageError

	// ExitInputError indicates an unsuccessful program execution due to
	// input that does not describe an automaton.
	ExitInputError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	flagDFA     *bool   = pflag.BoolP("dfa", "d", false, "Convert the NFA to a DFA before emitting")
	flagMin     *bool   = pflag.BoolP("minimize", "m", false, "Minimize the DFA before emitting; requires --dfa")
	flagFinal   *string = pflag.StringP("final", "f", "", "Comma-separated final states of the input NFA")
	labelsFile  *string = pflag.StringP("labels", "l", "", "TOML file with a [labels] table of state display labels")
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

	if *flagMin && !*flagDFA {
		fmt.Fprintf(os.Stderr, "ERROR: --minimize requires --dfa\n")
		returnCode = ExitUsageError
		return
	}

	nfa, err := readNFA(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInputError
		return
	}

	finals, err := parseFinalStates(*flagFinal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	if !*flagDFA {
		labels, err := readLabels(*labelsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitUsageError
			return
		}
		for _, f := range finals.Elements() {
			if labels[f] == "" {
				labels[f] = "final"
			}
		}

		if err := plantuml.WriteNFA(os.Stdout, nfa, labels); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInputError
		}
		return
	}

	dfa, categories := automaton.ToDFA(nfa, []automaton.StateSet{finals})
	if *flagMin {
		dfa, categories = automaton.Minimize(dfa, categories)
	}

	labels := map[automaton.State]string{}
	for _, f := range categories[0].Elements() {
		labels[f] = "final"
	}

	if err := plantuml.WriteDFA(os.Stdout, dfa, labels); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInputError
	}
}

// readNFA reads the edge list from in and sizes the NFA to fit it: the state
// count is one past the highest state mentioned, and likewise for symbols,
// with a minimum of one symbol for ε.
func readNFA(in *os.File) (automaton.NFA, error) {
	var edges []automaton.Edge
	numStates := 1
	numSymbols := 1

	scanner := bufio.NewScanner(in)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return automaton.NFA{}, fmt.Errorf("line %d: want 3 fields `from to symbol`, got %d", lineNum, len(fields))
		}

		nums := make([]int, 3)
		for i := range fields {
			n, err := strconv.Atoi(fields[i])
			if err != nil || n < 0 {
				return automaton.NFA{}, fmt.Errorf("line %d: %q is not an unsigned integer", lineNum, fields[i])
			}
			nums[i] = n
		}

		edges = append(edges, automaton.Edge{
			From: automaton.State(nums[0]),
			To:   automaton.State(nums[1]),
			On:   automaton.Symbol(nums[2]),
		})

		if nums[0]+1 > numStates {
			numStates = nums[0] + 1
		}
		if nums[1]+1 > numStates {
			numStates = nums[1] + 1
		}
		if nums[2]+1 > numSymbols {
			numSymbols = nums[2] + 1
		}
	}
	if err := scanner.Err(); err != nil {
		return automaton.NFA{}, err
	}

	return automaton.NewNFA(numStates, numSymbols, edges)
}

func parseFinalStates(arg string) (automaton.StateSet, error) {
	finals := util.NewKeySet[automaton.State]()

	if strings.TrimSpace(arg) == "" {
		return finals, nil
	}

	for _, part := range strings.Split(arg, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("--final: %q is not an unsigned integer", part)
		}
		finals.Add(automaton.State(n))
	}

	return finals, nil
}

func readLabels(file string) (map[automaton.State]string, error) {
	labels := map[automaton.State]string{}
	if file == "" {
		return labels, nil
	}

	var doc struct {
		Labels map[string]string `toml:"labels"`
	}
	if _, err := toml.DecodeFile(file, &doc); err != nil {
		return nil, fmt.Errorf("--labels: %w", err)
	}

	for k, v := range doc.Labels {
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("--labels: state %q is not an unsigned integer", k)
		}
		labels[automaton.State(n)] = v
	}

	return labels, nil
}
