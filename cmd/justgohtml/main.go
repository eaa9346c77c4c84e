// Command justgohtml is a CLI tool for parsing and querying HTML and
// Markdown documents.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arborview/parsekit"
	configfile "github.com/arborview/parsekit/config"
	"github.com/arborview/parsekit/dom"
	"github.com/arborview/parsekit/reporter"
	// Import selector package to register selector functions via init()
	_ "github.com/arborview/parsekit/selector"
	"github.com/arborview/parsekit/serialize"
	"github.com/arborview/parsekit/source"
	"github.com/arborview/parsekit/stream"
)

// Output format constants.
const (
	outputFormatHTML     = "html"
	outputFormatText     = "text"
	outputFormatMarkdown = "markdown"
	outputFormatEvents   = "events"
)

var version = "dev"

// config holds the CLI configuration.
type config struct {
	selector   string
	format     string
	first      bool
	separator  string
	strip      bool
	pretty     bool
	indent     int
	markdown   bool
	strict     bool
	configFile string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg := &config{}
	var showVersion bool

	cmd := &cobra.Command{
		Use:   "justgohtml [flags] <file>",
		Short: "Parse and query HTML and Markdown documents",
		Long:  "Parse and query HTML and Markdown documents.\n\nThe file argument is a path, or '-' for stdin.",
		Example: "  justgohtml index.html                    Parse and pretty-print HTML\n" +
			"  justgohtml -s 'p' index.html             Extract all <p> elements\n" +
			"  justgohtml -s 'h1' -f text index.html    Extract h1 text content\n" +
			"  justgohtml --markdown README.md          Parse Markdown to a DOM tree\n" +
			"  curl -s URL | justgohtml -s 'title' -    Extract title from piped HTML",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			if showVersion {
				fmt.Fprintf(stderr, "justgohtml version %s\n", version)
				return nil
			}
			if len(posArgs) == 0 {
				_ = cmd.Usage()
				return fmt.Errorf("missing input file")
			}
			if cfg.configFile != "" {
				if err := applyConfigFile(cfg, cmd.Flags()); err != nil {
					return err
				}
			}
			return execute(cfg, posArgs[0], stdin, stdout)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&cfg.selector, "selector", "s", "", "CSS selector to filter output")
	fl.StringVarP(&cfg.format, "format", "f", "html", "Output format: html, text, markdown, events")
	fl.BoolVar(&cfg.first, "first", false, "Output only first match")
	fl.StringVar(&cfg.separator, "separator", " ", "Not used: text results are always joined with newlines")
	fl.BoolVar(&cfg.strip, "strip", true, "Strip whitespace from text")
	fl.BoolVar(&cfg.pretty, "pretty", true, "Pretty-print HTML output")
	fl.IntVar(&cfg.indent, "indent", 2, "Indentation size for pretty-print")
	fl.BoolVar(&cfg.markdown, "markdown", false, "Treat input as Markdown instead of HTML")
	fl.BoolVar(&cfg.strict, "strict", false, "Enable strict tag/attribute name checking")
	fl.StringVar(&cfg.configFile, "config", "", "Load option defaults from a key = value file")
	fl.BoolVarP(&showVersion, "version", "v", false, "Show version")

	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// applyConfigFile fills cfg fields from a key = value configuration file for
// every option the command line did not set explicitly; flags win over the
// file.
func applyConfigFile(cfg *config, flags *pflag.FlagSet) error {
	data, err := os.ReadFile(cfg.configFile)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	values, err := configfile.Parse(cfg.configFile, source.New(cfg.configFile, []rune(string(data))), reporter.Default())
	if err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	setString := func(key string, dst *string) {
		if v, ok := values[key]; ok && !flags.Changed(key) {
			*dst = v
		}
	}
	setBool := func(key string, dst *bool) error {
		v, ok := values[key]
		if !ok || flags.Changed(key) {
			return nil
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config %s: %q is not a boolean", key, v)
		}
		*dst = parsed
		return nil
	}

	setString("selector", &cfg.selector)
	setString("format", &cfg.format)
	setString("separator", &cfg.separator)
	if v, ok := values["indent"]; ok && !flags.Changed("indent") {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config indent: %q is not an integer", v)
		}
		cfg.indent = parsed
	}
	for key, dst := range map[string]*bool{
		"first":    &cfg.first,
		"strip":    &cfg.strip,
		"pretty":   &cfg.pretty,
		"markdown": &cfg.markdown,
		"strict":   &cfg.strict,
	} {
		if err := setBool(key, dst); err != nil {
			return err
		}
	}
	return nil
}

func execute(cfg *config, inputPath string, stdin io.Reader, stdout io.Writer) error {
	switch cfg.format {
	case outputFormatHTML, outputFormatText, outputFormatMarkdown, outputFormatEvents:
	default:
		return fmt.Errorf("invalid format %q: must be html, text, markdown, or events", cfg.format)
	}

	input, err := readInput(inputPath, stdin)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	if cfg.format == outputFormatEvents {
		return printEvents(input, cfg.markdown, stdout)
	}

	var doc *dom.Document
	if cfg.markdown {
		doc = parsekit.ParseMarkdown(string(input))
	} else {
		var opts []parsekit.Option
		if cfg.strict {
			opts = append(opts, parsekit.WithStrictMode())
		}
		doc, err = parsekit.ParseBytes(input, opts...)
		if err != nil {
			return fmt.Errorf("parsing HTML: %w", err)
		}
	}

	// Get nodes to output
	var nodes []dom.Node
	if cfg.selector != "" {
		elements, err := doc.Query(cfg.selector)
		if err != nil {
			return fmt.Errorf("invalid selector: %w", err)
		}
		if cfg.first && len(elements) > 0 {
			elements = elements[:1]
		}
		for _, elem := range elements {
			nodes = append(nodes, elem)
		}
	} else {
		nodes = []dom.Node{doc}
	}

	// Format and output
	output := formatNodes(nodes, cfg)
	_, err = fmt.Fprint(stdout, output)
	return err
}

// printEvents writes one line per parse event from the streaming API,
// bypassing tree construction entirely.
func printEvents(input []byte, markdown bool, stdout io.Writer) error {
	var events <-chan stream.Event
	if markdown {
		events = stream.StreamMarkdown(string(input))
	} else {
		events = stream.StreamBytes(input)
	}
	for ev := range events {
		switch ev.Type {
		case stream.TextEvent, stream.CommentEvent:
			fmt.Fprintf(stdout, "%s %q\n", ev.Type, ev.Data)
		default:
			fmt.Fprintf(stdout, "%s %s\n", ev.Type, ev.Name)
		}
	}
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func formatNodes(nodes []dom.Node, cfg *config) string {
	if len(nodes) == 0 {
		return ""
	}

	var results []string

	for _, node := range nodes {
		var result string
		switch cfg.format {
		case outputFormatHTML:
			result = formatHTML(node, cfg)
		case outputFormatText:
			result = formatText(node, cfg)
		case outputFormatMarkdown:
			result = formatMarkdown(node, cfg)
		}
		if result != "" {
			results = append(results, result)
		}
	}

	output := strings.Join(results, "\n")
	if output != "" && !strings.HasSuffix(output, "\n") {
		output += "\n"
	}
	return output
}

func formatHTML(node dom.Node, cfg *config) string {
	opts := serialize.Options{
		Pretty:     cfg.pretty,
		IndentSize: cfg.indent,
	}
	return serialize.ToHTML(node, opts)
}

func formatText(node dom.Node, cfg *config) string {
	text := extractText(node)
	if cfg.strip {
		text = collapseWhitespace(text)
	}
	return text
}

func formatMarkdown(node dom.Node, _ *config) string {
	return toMarkdown(node)
}

// extractText extracts all text content from a node.
func extractText(node dom.Node) string {
	var sb strings.Builder
	extractTextRecursive(node, &sb)
	return sb.String()
}

func extractTextRecursive(node dom.Node, sb *strings.Builder) {
	switch n := node.(type) {
	case *dom.Text:
		sb.WriteString(n.Data)
	case *dom.Element:
		for _, child := range n.Children() {
			extractTextRecursive(child, sb)
		}
	case *dom.Document:
		for _, child := range n.Children() {
			extractTextRecursive(child, sb)
		}
	}
}

// collapseWhitespace collapses runs of whitespace into single spaces and trims.
func collapseWhitespace(s string) string {
	var sb strings.Builder
	inWhitespace := true // Start true to trim leading whitespace
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' {
			if !inWhitespace {
				sb.WriteByte(' ')
				inWhitespace = true
			}
		} else {
			sb.WriteRune(r)
			inWhitespace = false
		}
	}
	result := sb.String()
	// Trim trailing space
	if len(result) > 0 && result[len(result)-1] == ' ' {
		result = result[:len(result)-1]
	}
	return result
}

// toMarkdown converts a node to Markdown format.
func toMarkdown(node dom.Node) string {
	var sb strings.Builder
	toMarkdownRecursive(node, &sb, 0)
	return strings.TrimSpace(sb.String())
}

func toMarkdownRecursive(node dom.Node, sb *strings.Builder, listDepth int) {
	switch n := node.(type) {
	case *dom.Text:
		text := collapseWhitespace(n.Data)
		if text != "" {
			sb.WriteString(text)
		}
	case *dom.Element:
		mdElementToMarkdown(n, sb, listDepth)
	case *dom.Document:
		for _, child := range n.Children() {
			toMarkdownRecursive(child, sb, listDepth)
		}
	}
}

// mdElementToMarkdown converts an HTML element to Markdown.
func mdElementToMarkdown(n *dom.Element, sb *strings.Builder, listDepth int) {
	switch n.TagName {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		mdWriteHeading(n, sb)
	case "p":
		mdWriteParagraph(n, sb, listDepth)
	case "br":
		sb.WriteString("  \n")
	case "hr":
		sb.WriteString("\n---\n\n")
	case "strong", "b":
		mdWriteInlineFormatted(n, sb, listDepth, "**")
	case "em", "i":
		mdWriteInlineFormatted(n, sb, listDepth, "*")
	case "code":
		sb.WriteString("`")
		writeChildrenText(n, sb)
		sb.WriteString("`")
	case "pre":
		sb.WriteString("```\n")
		writeChildrenText(n, sb)
		sb.WriteString("\n```\n\n")
	case "a":
		mdWriteLink(n, sb)
	case "img":
		mdWriteImage(n, sb)
	case "ul":
		mdWriteUnorderedList(n, sb, listDepth)
	case "ol":
		mdWriteOrderedList(n, sb, listDepth)
	case "blockquote":
		mdWriteBlockquote(n, sb)
	case "table":
		writeTable(n, sb)
	case "script", "style", "head":
		// Skip these elements
	default:
		for _, child := range n.Children() {
			toMarkdownRecursive(child, sb, listDepth)
		}
	}
}

func mdWriteHeading(n *dom.Element, sb *strings.Builder) {
	level := int(n.TagName[1] - '0')
	sb.WriteString(strings.Repeat("#", level))
	sb.WriteString(" ")
	writeChildrenText(n, sb)
	sb.WriteString("\n\n")
}

func mdWriteParagraph(n *dom.Element, sb *strings.Builder, listDepth int) {
	for _, child := range n.Children() {
		toMarkdownRecursive(child, sb, listDepth)
	}
	sb.WriteString("\n\n")
}

func mdWriteInlineFormatted(n *dom.Element, sb *strings.Builder, listDepth int, marker string) {
	sb.WriteString(marker)
	for _, child := range n.Children() {
		toMarkdownRecursive(child, sb, listDepth)
	}
	sb.WriteString(marker)
}

func mdWriteLink(n *dom.Element, sb *strings.Builder) {
	href := n.Attr("href")
	sb.WriteString("[")
	writeChildrenText(n, sb)
	sb.WriteString("](")
	sb.WriteString(href)
	sb.WriteString(")")
}

func mdWriteImage(n *dom.Element, sb *strings.Builder) {
	alt := n.Attr("alt")
	src := n.Attr("src")
	sb.WriteString("![")
	sb.WriteString(alt)
	sb.WriteString("](")
	sb.WriteString(src)
	sb.WriteString(")")
}

func mdWriteUnorderedList(n *dom.Element, sb *strings.Builder, listDepth int) {
	sb.WriteString("\n")
	for _, child := range n.Children() {
		if elem, ok := child.(*dom.Element); ok && elem.TagName == "li" {
			sb.WriteString(strings.Repeat("  ", listDepth))
			sb.WriteString("- ")
			for _, liChild := range elem.Children() {
				toMarkdownRecursive(liChild, sb, listDepth+1)
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
}

func mdWriteOrderedList(n *dom.Element, sb *strings.Builder, listDepth int) {
	sb.WriteString("\n")
	num := 1
	for _, child := range n.Children() {
		if elem, ok := child.(*dom.Element); ok && elem.TagName == "li" {
			sb.WriteString(strings.Repeat("  ", listDepth))
			fmt.Fprintf(sb, "%d. ", num)
			for _, liChild := range elem.Children() {
				toMarkdownRecursive(liChild, sb, listDepth+1)
			}
			sb.WriteString("\n")
			num++
		}
	}
	sb.WriteString("\n")
}

func mdWriteBlockquote(n *dom.Element, sb *strings.Builder) {
	lines := strings.Split(extractText(n), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			sb.WriteString("> ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
}

func writeChildrenText(elem *dom.Element, sb *strings.Builder) {
	text := extractText(elem)
	text = collapseWhitespace(text)
	sb.WriteString(text)
}

func writeTable(table *dom.Element, sb *strings.Builder) {
	headers, rows := extractTableData(table)

	if len(headers) == 0 && len(rows) == 0 {
		return
	}

	colCount := normalizeTableData(&headers, rows)
	writeMarkdownTable(sb, headers, rows, colCount)
}

func extractTableData(table *dom.Element) ([]string, [][]string) {
	var headers []string
	var rows [][]string

	for _, child := range table.Children() {
		elem, ok := child.(*dom.Element)
		if !ok {
			continue
		}

		switch elem.TagName {
		case "thead":
			headers = extractTableHeader(elem)
		case "tbody":
			rows = append(rows, extractTableBodyRows(elem)...)
		case "tr":
			headers, rows = handleDirectTableRow(elem, headers, rows)
		}
	}
	return headers, rows
}

func extractTableHeader(thead *dom.Element) []string {
	for _, tr := range thead.Children() {
		if trElem, ok := tr.(*dom.Element); ok && trElem.TagName == "tr" {
			headers := extractTableRow(trElem, "th")
			if len(headers) == 0 {
				headers = extractTableRow(trElem, "td")
			}
			return headers
		}
	}
	return nil
}

func extractTableBodyRows(tbody *dom.Element) [][]string {
	var rows [][]string
	for _, tr := range tbody.Children() {
		if trElem, ok := tr.(*dom.Element); ok && trElem.TagName == "tr" {
			row := extractTableRow(trElem, "td")
			if len(row) > 0 {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func handleDirectTableRow(elem *dom.Element, headers []string, rows [][]string) ([]string, [][]string) {
	cells := extractTableRow(elem, "th")
	if len(cells) > 0 && len(headers) == 0 {
		return cells, rows
	}
	cells = extractTableRow(elem, "td")
	if len(cells) > 0 {
		rows = append(rows, cells)
	}
	return headers, rows
}

func normalizeTableData(headers *[]string, rows [][]string) int {
	colCount := len(*headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	for len(*headers) < colCount {
		*headers = append(*headers, "")
	}
	for i := range rows {
		for len(rows[i]) < colCount {
			rows[i] = append(rows[i], "")
		}
	}
	return colCount
}

func writeMarkdownTable(sb *strings.Builder, headers []string, rows [][]string, colCount int) {
	sb.WriteString("| ")
	sb.WriteString(strings.Join(headers, " | "))
	sb.WriteString(" |\n")

	sb.WriteString("|")
	for range colCount {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")

	for _, row := range rows {
		sb.WriteString("| ")
		sb.WriteString(strings.Join(row, " | "))
		sb.WriteString(" |\n")
	}
	sb.WriteString("\n")
}

func extractTableRow(tr *dom.Element, cellTag string) []string {
	var cells []string
	for _, child := range tr.Children() {
		if elem, ok := child.(*dom.Element); ok && elem.TagName == cellTag {
			text := collapseWhitespace(extractText(elem))
			cells = append(cells, text)
		}
	}
	return cells
}
