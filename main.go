package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/xmljson/internal/config"
	"github.com/mcncl/xmljson/internal/converter"
	"github.com/mcncl/xmljson/internal/encoder"
	"github.com/mcncl/xmljson/internal/errors"
	"github.com/mcncl/xmljson/internal/jsonparser"
	"github.com/mcncl/xmljson/internal/models"
	"github.com/mcncl/xmljson/internal/xmlparser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	From        string `help:"Input format. Auto-detects from the first character by default." enum:"auto,json,xml" default:"auto"`
	To          string `help:"Output format. Defaults to the opposite of the input format." enum:"auto,json,xml" default:"auto"`
	RootTag     string `help:"Root tag used when a JSON document has no implicit root name." short:"r" default:"root"`
	Pretty      bool   `help:"Indent the output." short:"p"`
	Config      string `help:"Path to config file. Defaults to the nearest .xmljson.yml." short:"c" type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("xmljson"),
		kong.Description("A tool to convert between XML and JSON"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("xmljson version %s\n", Version)
		return
	}

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, CLI.RootTag, CLI.Pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(errors.NewConfigError(err.Error(), err)))
		os.Exit(1)
	}

	err = run(&Context{Debug: CLI.Debug || cfg.Dev.Debug, Config: cfg})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: xmljson --help\n")

		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Read the input document
	text, err := readInput()
	if err != nil {
		// Error is already wrapped by readInput
		return err
	}

	// 2. Resolve input and output formats
	from := CLI.From
	if from == "" || from == "auto" {
		from, err = detectFormat(text)
		if err != nil {
			return err
		}
	}
	to := CLI.To
	if to == "" || to == "auto" {
		if from == "json" {
			to = "xml"
		} else {
			to = "json"
		}
	}
	if ctx.Debug {
		fmt.Fprintf(os.Stderr, "converting %s -> %s\n", from, to)
	}

	// 3. Parse, convert and serialize
	conv := converter.NewWithConfig(ctx.Config)
	var out string
	switch from {
	case "json":
		value, err := jsonparser.ParseString(text)
		if err != nil {
			return err
		}
		if to == "json" {
			out = encodeJSON(ctx, value)
		} else {
			out = encodeXML(ctx, conv.JSONToXML(value, ctx.Config.RootTag))
		}
	case "xml":
		node, err := xmlparser.ParseString(text)
		if err != nil {
			return err
		}
		if to == "xml" {
			out = encodeXML(ctx, node)
		} else {
			out = encodeJSON(ctx, conv.XMLToJSON(node))
		}
	}

	// 4. Output the result
	return writeOutput(out)
}

func encodeJSON(ctx *Context, value models.Value) string {
	if ctx.Config.Output.Pretty {
		return encoder.JSONIndent(value, ctx.Config.Output.Indent)
	}
	return encoder.JSON(value)
}

func encodeXML(ctx *Context, node *models.Node) string {
	if ctx.Config.Output.Pretty {
		return encoder.XMLIndent(node, ctx.Config.Output.Indent)
	}
	return encoder.XML(node)
}

// detectFormat guesses the input format from the first non-whitespace
// character: '<' means XML, anything a JSON value can start with means
// JSON.
func detectFormat(text string) (string, error) {
	trimmed := strings.TrimLeft(text, " \t\n\r")
	if trimmed == "" {
		return "", errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	switch trimmed[0] {
	case '<':
		return "xml", nil
	case '{', '[', '"', '-', 't', 'f', 'n',
		'0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return "json", nil
	default:
		return "", errors.NewInputError(
			fmt.Sprintf("cannot detect format from leading character %q", trimmed[0]),
			errors.ErrUnknownFormat,
		)
	}
}

// readInput reads the document from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(
					fmt.Sprintf("file '%s' not found", CLI.Input),
					errors.ErrFileNotFound,
				)
			}
			return "", errors.NewInputError(
				fmt.Sprintf("failed to read file '%s'", CLI.Input),
				err,
			)
		}
		if len(data) == 0 {
			return "", errors.NewInputError(
				fmt.Sprintf("input file '%s' is empty", CLI.Input),
				errors.ErrFileEmpty,
			)
		}
		return string(data), nil
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}

	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return string(data), nil
}

// writeOutput writes the converted document to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(out+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Println(strings.TrimSpace(out))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste a
// document and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "xmljson Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your XML or JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			builder.WriteString(line)
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		builder.WriteString(line)
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing...")
	return text, nil
}
