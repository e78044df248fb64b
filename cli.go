package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `minic - A MiniC compiler that emits Jasmin assembler for the JVM

Usage:
    minic <command> [arguments]

Commands:
    build <file>    Compile a .mc file to a Jasmin .j file
    run <file>      Compile, assemble with Jasmin and execute a .mc file
    eval <code>     Print the Jasmin assembler for inline MiniC code
    check <file>    Parse and generate code without writing output
    help            Show this help message

Examples:
    minic build -o Test.j examples/fib.mc
    minic eval 'void main() { _print(42); }'
    minic check myfile.mc

Use "minic <command> -h" for more information about a command.
`)
}

// addOptionFlags registers the flags shared by every compiling command.
func addOptionFlags(fs *flag.FlagSet) *Options {
	opts := DefaultOptions()
	fs.StringVar(&opts.ClassName, "class", opts.ClassName, "Name of the generated class")
	fs.IntVar(&opts.StackLimit, "stack", opts.StackLimit, "Value of each method's .limit stack")
	fs.IntVar(&opts.LocalsLimit, "locals", opts.LocalsLimit, "Value of each method's .limit locals")
	return &opts
}

func parseCommandFlags(fs *flag.FlagSet, args []string, argName string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one %s argument\n", argName)
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func readSource(filename string) []byte {
	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}
	// Add null terminator as required by lexer
	return append(sourceBytes, '\x00')
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output file path (default: <class>.j next to the source)")
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	opts := addOptionFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic build [-o output] [-class name] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .mc file to Jasmin assembler\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	filename := parseCommandFlags(fs, args, "file")

	// Determine output filename
	outputFile := *output
	if outputFile == "" {
		outputFile = filepath.Join(filepath.Dir(filename), opts.ClassName+".j")
	}

	if *verbose {
		fmt.Printf("Compiling %s to %s...\n", filename, outputFile)
	}

	asm, err := compileProgram(readSource(filename), *opts, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputFile, []byte(asm), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing assembler file %s: %v\n", outputFile, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s (%d lines)\n", outputFile, strings.Count(asm, "\n"))
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	opts := addOptionFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic run [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile, assemble and execute a .mc file\n\n")
		fmt.Fprintf(os.Stderr, "The Jasmin jar is taken from $JASMIN_JAR (default: jasmin.jar).\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	filename := parseCommandFlags(fs, args, "file")

	if *verbose {
		fmt.Printf("Compiling %s...\n", filename)
	}

	asm, err := compileProgram(readSource(filename), *opts, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}

	tempDir, err := os.MkdirTemp("", "minic-run-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating temporary directory: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(tempDir) // Clean up temporary files

	if *verbose {
		fmt.Printf("Assembling in %s...\n", tempDir)
	}

	if err := executeJasmin(asm, opts.ClassName, tempDir, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
		os.Exit(1)
	}
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose compilation details")
	opts := addOptionFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic eval [-v] <code>\n")
		fmt.Fprintf(os.Stderr, "Print the Jasmin assembler for inline MiniC code\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	code := parseCommandFlags(fs, args, "code")

	if *verbose {
		fmt.Printf("Evaluating: %s\n", code)
	}

	asm, err := compileProgram([]byte(code+"\x00"), *opts, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compilation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(asm)
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose checking details")
	opts := addOptionFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minic check [-class name] [-v] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse and generate code for a .mc file without writing output\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	filename := parseCommandFlags(fs, args, "file")

	if *verbose {
		fmt.Printf("Checking %s...\n", filename)
	}

	ast, err := checkProgram(readSource(filename), *opts)
	if err != nil {
		fmt.Printf("Errors in %s:\n%v\n", filename, err)
		os.Exit(1)
	}

	fmt.Printf("%s: no errors found\n", filename)

	if *verbose {
		fmt.Printf("AST: %s\n", ToSExpr(ast))
	}
}

// parseSource runs the front end over NUL-terminated MiniC source.
func parseSource(input []byte) (*ASTNode, error) {
	l := NewLexer(input)
	l.NextToken()
	ast := ParseProgram(l)

	if l.Errors.HasErrors() {
		return ast, fmt.Errorf("parsing errors:\n%s", l.Errors.String())
	}
	return ast, nil
}

// compileProgram parses NUL-terminated MiniC source and generates Jasmin text.
func compileProgram(input []byte, opts Options, verbose bool) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	ast, err := parseSource(input)
	if err != nil {
		return "", err
	}

	if verbose {
		fmt.Printf("AST: %s\n", ToSExpr(ast))
	}

	return CompileToJasmin(ast, opts)
}

// checkProgram validates opts, parses input and generates code, discarding
// the assembler text.
func checkProgram(input []byte, opts Options) (*ASTNode, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ast, err := parseSource(input)
	if err != nil {
		return ast, err
	}

	if _, err := CompileToJasmin(ast, opts); err != nil {
		return ast, fmt.Errorf("code generation error: %w", err)
	}
	return ast, nil
}

// executeJasmin assembles asm with Jasmin into dir and runs the class with
// java, copying the program's standard output to stdout.
func executeJasmin(asm, className, dir string, stdout io.Writer) error {
	jasminJar := os.Getenv("JASMIN_JAR")
	if jasminJar == "" {
		jasminJar = "jasmin.jar"
	}

	source := filepath.Join(dir, className+".j")
	if err := os.WriteFile(source, []byte(asm), 0644); err != nil {
		return fmt.Errorf("failed to write assembler file: %v", err)
	}

	assemble := exec.Command("java", "-jar", jasminJar, "-d", dir, source)
	if output, err := assemble.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to assemble with %s: %v\nOutput: %s", jasminJar, err, output)
	}

	cmd := exec.Command("java", "-cp", dir, className)
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "build":
		buildCommand(args)
	case "run":
		runCommand(args)
	case "eval":
		evalCommand(args)
	case "check":
		checkCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
