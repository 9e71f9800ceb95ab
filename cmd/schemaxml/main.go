// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaxml

// schemaxml renders XML examples from Swagger/OpenAPI schemas.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/schemaxml"
)

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/schemaxml"
	_buildTime string
)

// cliOptions describes schemaxml CLI flags and subcommands.
type cliOptions struct {
	LogLevel string `long:"log-level" env:"SCHEMAXML_LOG_LEVEL" description:"Log level for diagnostics on stderr" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`

	Version    versionCommand    `command:"version" description:"Print version information"`
	Model      modelCommand      `command:"model" description:"Render example for one model of API document"`
	Schema     schemaCommand     `command:"schema" description:"Render example for standalone schema"`
	Operations operationsCommand `command:"operations" description:"Render XML request and response bodies of API operations"`
	Template   templateCommand   `command:"template" description:"Print built-in markdown template"`
	DocToMD    docToMarkdownCmd  `command:"doc2md" description:"Convert API document to markdown reference with XML examples"`
}

// exampleFlags groups flags shared by example rendering commands.
type exampleFlags struct {
	Name      string `short:"n" long:"name" description:"Root element name override"`
	Parameter bool   `short:"P" long:"parameter" description:"Render request body example (readOnly properties omitted)"`
	Format    string `short:"F" long:"format" description:"Example output format" choice:"xml" choice:"json" choice:"yaml" default:"xml"`
}

// markdownRenderFlags groups markdown rendering flags.
type markdownRenderFlags struct {
	TemplatePath   string `short:"f" long:"template-file" description:"Path to custom markdown template (.gotmpl)"`
	Title          string `short:"T" long:"title" description:"Markdown document title" default:"xml examples"`
	ListMarker     string `short:"l" long:"list-marker" description:"Unordered list marker" choice:"-" choice:"*" default:"*"`
	WrapWidth      int    `short:"w" long:"wrap" description:"Wrap width for plain text descriptions" default:"80"`
	Parameter      bool   `short:"P" long:"parameter" description:"Render model examples as request bodies (readOnly properties omitted)"`
	SkipOperations bool   `long:"skip-operations" description:"Do not render operations section"`
	ExampleFormat  string `short:"e" long:"example-format" description:"Add JSON or YAML example next to XML for every model" choice:"json" choice:"yaml"`
}

// templateSelectFlags groups built-in template selection flags.
type templateSelectFlags struct {
	TemplateName string `short:"t" long:"template" env:"SCHEMAXML_TEMPLATE" description:"Built-in template style" choice:"list" choice:"table" default:"list"`
}

// modelCommand renders one registry model from API document.
type modelCommand struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Input API document path (optional; stdin when omitted)"`
		Output string `positional-arg-name:"output" description:"Output file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	ModelName    string       `short:"m" long:"model" description:"Model name from definitions or components/schemas" required:"yes"`
	ExampleFlags exampleFlags `group:"Example"`
}

// Execute runs model subcommand.
func (command *modelCommand) Execute(_ []string) error {
	return command.runner.runModel(command.ModelName, command.ExampleFlags, command.Args.Input, command.Args.Output)
}

// schemaCommand renders standalone schema with optional definitions document.
type schemaCommand struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Input schema path (optional; stdin when omitted)"`
		Output string `positional-arg-name:"output" description:"Output file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	DefinitionsPath string       `short:"d" long:"definitions" description:"API document supplying models for $ref nodes"`
	ExampleFlags    exampleFlags `group:"Example"`
}

// Execute runs schema subcommand.
func (command *schemaCommand) Execute(_ []string) error {
	return command.runner.runSchema(command.DefinitionsPath, command.ExampleFlags, command.Args.Input, command.Args.Output)
}

// operationsCommand renders XML bodies of every operation.
type operationsCommand struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Input API document path (optional; stdin when omitted)"`
		Output string `positional-arg-name:"output" description:"Output file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	Strict bool `short:"s" long:"strict" description:"Fail when any operation example cannot be rendered"`
}

// Execute runs operations subcommand.
func (command *operationsCommand) Execute(_ []string) error {
	return command.runner.runOperations(command.Strict, command.Args.Input, command.Args.Output)
}

// docToMarkdownCmd converts API document to markdown.
type docToMarkdownCmd struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Input API document path (optional; stdin when omitted)"`
		Output string `positional-arg-name:"output" description:"Output markdown file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	TemplateFlags templateSelectFlags `group:"Template Select"`
	RenderFlags   markdownRenderFlags `group:"Markdown Render"`
}

// Execute runs doc2md subcommand.
func (command *docToMarkdownCmd) Execute(_ []string) error {
	return command.runner.runDocToMarkdown(command.TemplateFlags.TemplateName, command.RenderFlags, command.Args.Input, command.Args.Output)
}

// templateCommand exports built-in markdown template.
type templateCommand struct {
	runner *cliRunner
	Args   struct {
		Output string `positional-arg-name:"output" description:"Output template file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	TemplateFlags templateSelectFlags `group:"Template Select"`
}

// Execute runs template subcommand.
func (command *templateCommand) Execute(_ []string) error {
	return command.runner.runTemplate(command.TemplateFlags.TemplateName, command.Args.Output)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	return command.runner.printVersionInfo()
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	logger      *logrus.Logger
	programName string
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "schemaxml"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		logger:      newLogger(stderr),
	}

	return runner.run(args)
}

// newLogger creates text logger without timestamps writing to output.
func newLogger(output io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.Out = output
	logger.Formatter = &logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	}
	logger.Level = logrus.InfoLevel

	return logger
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// runModel renders example for one named model of API document.
func (runner *cliRunner) runModel(modelName string, example exampleFlags, inputPath, outputPath string) error {
	data, sourcePath, err := runner.readInput(inputPath, "document")
	if err != nil {
		return err
	}

	registry, err := schemaxml.ParseRegistry(data)
	if err != nil {
		return fmt.Errorf("parse document %s: %w", sourcePath, err)
	}

	runner.logger.WithField("source", sourcePath).Debugf("loaded %d models", len(registry))

	if _, ok := registry.Lookup(modelName); !ok {
		return fmt.Errorf("%w %q in %s", schemaxml.ErrUnknownReference, modelName, sourcePath)
	}

	schema := &schemaxml.Schema{Ref: schemaxml.ModelReference(modelName)}
	if name := strings.TrimSpace(example.Name); name != "" {
		schema.XML = &schemaxml.XML{Name: name}
	}

	rendered, err := schemaxml.GenerateExample("", schema, registry, example.Parameter, schemaxml.ExampleFormat(example.Format))
	if err != nil {
		return fmt.Errorf("render model %q: %w", modelName, err)
	}

	return runner.writeOutput(outputPath, withTrailingNewline(rendered), "example")
}

// runSchema renders example for standalone schema resolving references against optional document.
func (runner *cliRunner) runSchema(definitionsPath string, example exampleFlags, inputPath, outputPath string) error {
	data, sourcePath, err := runner.readInput(inputPath, "schema")
	if err != nil {
		return err
	}

	schema, err := schemaxml.ParseSchema(data)
	if err != nil {
		return fmt.Errorf("parse schema %s: %w", sourcePath, err)
	}

	registry := schemaxml.NewRegistry()
	if definitionsPath = strings.TrimSpace(definitionsPath); definitionsPath != "" {
		definitions, err := os.ReadFile(definitionsPath)
		if err != nil {
			return fmt.Errorf("read definitions file %q: %w", definitionsPath, err)
		}

		registry, err = schemaxml.ParseRegistry(definitions)
		if err != nil {
			return fmt.Errorf("parse definitions %s: %w", definitionsPath, err)
		}

		runner.logger.WithField("source", definitionsPath).Debugf("loaded %d models", len(registry))
	}

	rendered, err := schemaxml.GenerateExample(strings.TrimSpace(example.Name), schema, registry, example.Parameter, schemaxml.ExampleFormat(example.Format))
	if err != nil {
		return fmt.Errorf("render schema %s: %w", sourcePath, err)
	}

	return runner.writeOutput(outputPath, withTrailingNewline(rendered), "example")
}

// runOperations renders XML bodies of every operation and logs failed ones.
func (runner *cliRunner) runOperations(strict bool, inputPath, outputPath string) error {
	data, sourcePath, err := runner.readInput(inputPath, "document")
	if err != nil {
		return err
	}

	examples, err := schemaxml.RenderOperations(data)
	if err != nil {
		return fmt.Errorf("render operations %s: %w", sourcePath, err)
	}

	var out strings.Builder
	failed := 0
	for _, example := range examples {
		entry := runner.logger.WithFields(logrus.Fields{
			"operation": example.OperationID,
			"role":      example.Role,
		})

		if example.Err != nil {
			entry.WithError(example.Err).Warn("skip operation example")
			failed++
			continue
		}

		entry.Debug("rendered operation example")
		fmt.Fprintf(&out, "# %s %s %s", example.Method, example.Path, example.Role)
		if example.Status != "" {
			fmt.Fprintf(&out, " %s", example.Status)
		}

		fmt.Fprintf(&out, " (%s)\n%s\n\n", example.MediaType, example.XML)
	}

	if len(examples) == 0 {
		runner.logger.WithField("source", sourcePath).Warn("document has no operations with XML bodies")
	}

	if strict && failed > 0 {
		return fmt.Errorf("render operations %s: %d of %d examples failed", sourcePath, failed, len(examples))
	}

	return runner.writeOutput(outputPath, []byte(strings.TrimRight(out.String(), "\n")+"\n"), "operations")
}

// runDocToMarkdown renders markdown reference and writes result to stdout or file.
func (runner *cliRunner) runDocToMarkdown(templateName string, renderFlags markdownRenderFlags, inputPath, outputPath string) error {
	data, sourcePath, err := runner.readInput(inputPath, "document")
	if err != nil {
		return err
	}

	renderOptions := schemaxml.Options{
		Title:          renderFlags.Title,
		SourcePath:     sourcePath,
		TemplateName:   templateName,
		WrapWidth:      renderFlags.WrapWidth,
		ListMarker:     renderFlags.ListMarker,
		Parameter:      renderFlags.Parameter,
		SkipOperations: renderFlags.SkipOperations,
		ExampleFormat:  schemaxml.ExampleFormat(renderFlags.ExampleFormat),
	}

	if renderFlags.TemplatePath != "" {
		customTemplate, err := os.ReadFile(renderFlags.TemplatePath)
		if err != nil {
			return fmt.Errorf("read template file %q: %w", renderFlags.TemplatePath, err)
		}

		renderOptions.TemplateText = string(customTemplate)
	}

	if !renderFlags.SkipOperations {
		runner.warnFailedOperations(data)
	}

	rendered, err := schemaxml.Render(data, renderOptions)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	return runner.writeOutput(outputPath, []byte(rendered), "markdown")
}

// warnFailedOperations logs operations whose examples end up as errors in markdown.
func (runner *cliRunner) warnFailedOperations(data []byte) {
	examples, err := schemaxml.RenderOperations(data)
	if err != nil {
		runner.logger.WithError(err).Debug("operations section skipped")
		return
	}

	for _, example := range examples {
		if example.Err == nil {
			continue
		}

		runner.logger.WithFields(logrus.Fields{
			"operation": example.OperationID,
			"role":      example.Role,
		}).WithError(example.Err).Warn("operation example unavailable")
	}
}

// runTemplate writes selected built-in template to stdout or file.
func (runner *cliRunner) runTemplate(templateName, outputPath string) error {
	tpl, err := schemaxml.BuiltinTemplate(templateName)
	if err != nil {
		return fmt.Errorf("load built-in template %q: %w", templateName, err)
	}

	return runner.writeOutput(outputPath, []byte(tpl), "template")
}

// readInput reads file path or stdin and returns source marker.
func (runner *cliRunner) readInput(path, what string) ([]byte, string, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read %s file %q: %w", what, path, err)
		}

		return data, path, nil
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read %s from stdin: %w", what, err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, "", fmt.Errorf("read %s from stdin: empty input", what)
	}

	return data, "(stdin)", nil
}

// writeOutput writes data to stdout when path is empty, otherwise to file.
func (runner *cliRunner) writeOutput(path string, data []byte, what string) error {
	if strings.TrimSpace(path) == "" {
		if _, err := runner.stdout.Write(data); err != nil {
			return fmt.Errorf("write %s to stdout: %w", what, err)
		}

		return nil
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s file %q: %w", what, path, err)
	}

	runner.logger.WithField("path", path).Debugf("%s written", what)
	return nil
}

// withTrailingNewline appends newline to rendered example when missing.
func withTrailingNewline(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] == '\n' {
		return data
	}

	return append(data, '\n')
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Version.runner = runner
	options.Model.runner = runner
	options.Schema.runner = runner
	options.Operations.runner = runner
	options.Template.runner = runner
	options.DocToMD.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		level, err := logrus.ParseLevel(options.LogLevel)
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}

		runner.logger.SetLevel(level)
		if command == nil {
			return nil
		}

		return command.Execute(args)
	}
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	return nil
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"template": strings.TrimSpace(fmt.Sprintf(`
Print built-in markdown template text (`+"`list` or `table`"+`).
Use it as a starting point for a custom template file.

Examples:
> $ %s template > list.gotmpl
> $ %s template -t table templates/table.gotmpl
`, programName, programName)),
		"model": strings.TrimSpace(fmt.Sprintf(`
Render example payload for one model of Swagger 2.0 or OpenAPI 3 document.
The model name becomes the root element unless --name is given.

Examples:
> $ %s model -m Pet petstore.yaml
> $ %s model -m Pet --parameter --format yaml petstore.yaml pet.yaml
`, programName, programName)),
		"schema": strings.TrimSpace(fmt.Sprintf(`
Render example payload for standalone JSON or YAML schema.
References are resolved against --definitions document.

Examples:
> $ %s schema --name pets --definitions petstore.yaml pets.schema.yaml
> $ cat schema.json | %s schema -n item
`, programName, programName)),
		"operations": strings.TrimSpace(fmt.Sprintf(`
Render XML request and response bodies of every operation that
consumes or produces an XML media type.

Examples:
> $ %s operations petstore.yaml
> $ %s operations --strict openapi.json bodies.txt
`, programName, programName)),
		"doc2md": strings.TrimSpace(fmt.Sprintf(`
Convert Swagger/OpenAPI document to markdown reference with XML examples.
Reads document from file argument or stdin; writes markdown to file argument or stdout.

Examples:
> $ %s doc2md petstore.yaml > petstore.md
> $ cat openapi.yaml | %s doc2md -t table -e json > api.md
`, programName, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

// printVersionInfo writes build metadata to stdout.
func (runner *cliRunner) printVersionInfo() error {
	_, err := fmt.Fprintf(runner.stdout, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, runner.programName, Version, Commit, BuildTime)

	return err
}
