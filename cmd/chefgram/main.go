/*
Chefgram inspects a context-free grammar and parses token streams with it.

The single argument is a TOML grammar description:

	start = "S"

	[tokens]
	a = 0
	lparen = 1
	rparen = 2
	plus = 3

	[[rules]]
	var = "S"
	alts = [["F"], ["lparen", "S", "plus", "F", "rparen"]]

	[[rules]]
	var = "F"
	alts = [["a"]]

Each name in an alternative is looked up in the [tokens] table first; a name
not found there is a variable. The name "ε" (or "eps") is the empty-string
marker for erasable alternatives.

Usage:

	chefgram [flags] GRAMMAR.toml

The flags are:

	-v, --version
		Give the current version of chef and then exit.

	-s, --sets
		Print the FIRST and FOLLOW sets of every variable.

	-t, --table
		Print the LL(1) parse table.

	-p, --parse
		Read sentences from stdin, one per line, each a whitespace-separated
		list of token names, and print whether each is accepted.

	--tree
		With --parse, print the concrete syntax tree of accepted sentences.

With no mode flags, chefgram just builds the LL(1) table and reports whether
the grammar is LL(1). Exit code 0 means success; a non-LL(1) grammar in the
default mode exits non-zero with the conflict explained on stderr.
*/
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/chef/grammar"
	"github.com/dekarrin/chef/internal/util"
	"github.com/dekarrin/chef/internal/version"
	"github.com/dekarrin/chef/parse"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates an unsuccessful program execution due to a
	// problem with the given flags or grammar file.
	ExitUsageError

	// ExitNotLL1 indicates that the given grammar is not LL(1).
	ExitNotLL1
)

var (
	returnCode  int   = ExitSuccess
	flagVersion *bool = pflag.BoolP("version", "v", false, "Gives the version info")
	flagSets    *bool = pflag.BoolP("sets", "s", false, "Print the FIRST and FOLLOW sets")
	flagTable   *bool = pflag.BoolP("table", "t", false, "Print the LL(1) parse table")
	flagParse   *bool = pflag.BoolP("parse", "p", false, "Parse token sentences from stdin")
	flagTree    *bool = pflag.Bool("tree", false, "With --parse, print the syntax tree of accepted sentences")
)

// grammarFile is the TOML shape of a grammar description.
type grammarFile struct {
	Start  string         `toml:"start"`
	Tokens map[string]int `toml:"tokens"`
	Rules  []ruleEntry    `toml:"rules"`
}

type ruleEntry struct {
	Var  string     `toml:"var"`
	Alts [][]string `toml:"alts"`
}

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
		fmt.Fprintf(os.Stderr, "Usage: chefgram [flags] GRAMMAR.toml\n")
		returnCode = ExitUsageError
		return
	}

	g, tokenNames, err := loadGrammar(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitUsageError
		return
	}

	if *flagSets {
		printSets(g, tokenNames)
	}

	table, tableErr := g.LLParseTable()
	if tableErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", tableErr.Error())
		returnCode = ExitNotLL1
		return
	}

	if *flagTable {
		fmt.Println(table.String())
	}

	if !*flagSets && !*flagTable && !*flagParse {
		fmt.Printf("grammar is LL(1); table has entries for %d variables\n", len(table.Vars()))
	}

	if *flagParse {
		if err := parseSentences(g, tokenNames); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitUsageError
			return
		}
	}
}

func loadGrammar(file string) (grammar.Cfg, map[string]grammar.Token, error) {
	var doc grammarFile
	if _, err := toml.DecodeFile(file, &doc); err != nil {
		return grammar.Cfg{}, nil, err
	}

	if doc.Start == "" {
		return grammar.Cfg{}, nil, fmt.Errorf("%s: no start variable given", file)
	}

	tokenNames := map[string]grammar.Token{}
	for name, tok := range doc.Tokens {
		if tok < 0 {
			return grammar.Cfg{}, nil, fmt.Errorf("%s: token %q has reserved negative value %d", file, name, tok)
		}
		tokenNames[name] = grammar.Token(tok)
	}

	var rules []grammar.Rule
	for _, r := range doc.Rules {
		rule := grammar.Rule{Var: grammar.Var(r.Var)}
		for _, alt := range r.Alts {
			seq := grammar.Seq{}
			for _, name := range alt {
				seq = append(seq, resolveElement(name, tokenNames))
			}
			rule.Alts = append(rule.Alts, seq)
		}
		rules = append(rules, rule)
	}

	g, err := grammar.New(grammar.Var(doc.Start), rules)
	if err != nil {
		return grammar.Cfg{}, nil, fmt.Errorf("%s: %w", file, err)
	}

	return g, tokenNames, nil
}

func resolveElement(name string, tokenNames map[string]grammar.Token) grammar.Element {
	if name == "ε" || name == "eps" {
		return grammar.Epsilon
	}
	if tok, isToken := tokenNames[name]; isToken {
		return tok
	}
	return grammar.Var(name)
}

func printSets(g grammar.Cfg, tokenNames map[string]grammar.Token) {
	display := map[grammar.Token]string{}
	for name, tok := range tokenNames {
		display[tok] = name
	}

	first := g.FirstSets()
	follow := g.FollowSets(first)

	for _, v := range g.Vars() {
		fmt.Printf("FIRST(%s) = %s\n", v, setString(first[v], display))
	}
	for _, v := range g.Vars() {
		fmt.Printf("FOLLOW(%s) = %s\n", v, setString(follow[v], display))
	}
}

func setString(set grammar.TokenSet, display map[grammar.Token]string) string {
	var sb strings.Builder

	sb.WriteRune('{')
	for i, t := range util.OrderedKeys(set) {
		if i > 0 {
			sb.WriteString(", ")
		}
		if name, ok := display[t]; ok {
			sb.WriteString(name)
		} else {
			sb.WriteString(t.String())
		}
	}
	sb.WriteRune('}')

	return sb.String()
}

func parseSentences(g grammar.Cfg, tokenNames map[string]grammar.Token) error {
	p, err := parse.NewLL1Parser(g)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var tokens []grammar.Token
		badName := ""
		for _, name := range strings.Fields(line) {
			tok, ok := tokenNames[name]
			if !ok {
				badName = name
				break
			}
			tokens = append(tokens, tok)
		}
		if badName != "" {
			fmt.Printf("rejected (unknown token %q)\n", badName)
			continue
		}

		if *flagTree {
			tree, ok := p.Parse(parse.NewTokenStream(tokens...))
			if !ok {
				fmt.Println("rejected")
				continue
			}
			fmt.Println("accepted")
			fmt.Println(tree.String())
		} else if p.Recognize(parse.NewTokenStream(tokens...)) {
			fmt.Println("accepted")
		} else {
			fmt.Println("rejected")
		}
	}

	return scanner.Err()
}
