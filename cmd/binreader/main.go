// Command binreader loads a definition file, parses a binary file
// against one of its record types, and prints the result as JSON.
package main

import (
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/dfir-tools/binreader"
)

var (
	app = kingpin.New("binreader", "Parse a binary file against a declarative type definition.")

	formatPath = app.Flag("format", "Path to the type definition file.").Short('f').Required().String()
	inputPath  = app.Flag("input", "Path to the binary file to parse.").Short('i').Required().String()
	typeName   = app.Flag("type", "Root type name to parse (defaults to an arbitrary record type in the definition file).").Short('t').String()
	pretty     = app.Flag("pretty", "Pretty-print the JSON output.").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	os.Exit(run())
}

func run() int {
	profile := binreader.NewProfile()

	defData, err := os.ReadFile(*formatPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, binreader.NewErrorInfo(
			binreader.DebugInfo{FilePath: *formatPath}, binreader.ErrorCannotOpen,
			binreader.LevelError, 0, *formatPath).String())
		return 1
	}

	loadErrors, ok := profile.LoadDefinitions(*formatPath, defData)
	printErrors(loadErrors)
	if !ok {
		return 1
	}

	root := *typeName
	if root == "" {
		name, err := profile.RootTypeName()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}
		root = name
	}

	source, err := binreader.NewFileByteSource(*inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, binreader.NewErrorInfo(
			binreader.DebugInfo{FilePath: *inputPath}, binreader.ErrorCannotOpen,
			binreader.LevelError, 0, *inputPath).String())
		return 1
	}
	defer source.Close()

	reader := binreader.NewBufferedReader(source)
	parseErrors := &binreader.ErrorCollection{}
	value, ok := profile.Parse(root, reader, parseErrors)
	if !ok {
		printErrors(parseErrors)
		return 1
	}

	opts := binreader.DefaultJSONOptions
	opts.Pretty = *pretty
	output := binreader.DumpJSON(value, opts, parseErrors)
	printErrors(parseErrors)
	fmt.Println(output)

	return 0
}

func printErrors(errors *binreader.ErrorCollection) {
	if errors == nil {
		return
	}
	for _, e := range errors.All() {
		fmt.Fprintln(os.Stderr, e.String())
	}
}
