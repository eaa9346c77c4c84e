package markdown

import (
	"fmt"
	"html"
	"strings"

	"github.com/arborview/parsekit/dom"
	"github.com/arborview/parsekit/reporter"
	"github.com/arborview/parsekit/source"
	"github.com/arborview/parsekit/tokenizer"
	"github.com/arborview/parsekit/treebuilder"
)

// Bridge turns a Markdown token stream into the HTML code-point stream the
// HTML5 tokenizer consumes, closing the loop spec.md's data-flow diagram
// draws from the Markdown tokenizer through to the tree builder. It is a
// total function: every token kind has a rendering, and unknown/zero-value
// fields are simply omitted rather than raised as errors.
type Bridge struct {
	path string
	sink *reporter.Sink

	footnoteOrder []string
	footnoteDefs  map[string][]Token

	tightListDepth int
	tableAlign     []string
	tableCol       int
	tableRow       int
	headingStack   []int
	inDL           bool
	dlItemDepth    int
}

// NewBridge creates a Bridge that renders against a document's collected
// footnote table.
func NewBridge(path string, sink *reporter.Sink, footnoteOrder []string, footnoteDefs map[string][]Token) *Bridge {
	return &Bridge{
		path:          path,
		sink:          sink,
		footnoteOrder: footnoteOrder,
		footnoteDefs:  footnoteDefs,
	}
}

// Render translates tokens into the HTML rune stream that represents them,
// appending the footnote section once at the end if any footnotes were
// collected.
func (b *Bridge) Render(tokens []Token) []rune {
	var sb strings.Builder
	b.renderTokens(&sb, tokens)
	if len(b.footnoteOrder) > 0 {
		b.renderFootnotes(&sb)
	}
	return []rune(sb.String())
}

func (b *Bridge) renderTokens(sb *strings.Builder, tokens []Token) {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		// A <dl> stays open across consecutive term/definition groups and
		// closes when the next block-level token is not part of one.
		switch tok.Kind {
		case DLTitleBegin, DLDefinitionBegin:
			if !b.inDL {
				sb.WriteString("<dl>")
				b.inDL = true
			}
			b.dlItemDepth++
		case DLTitleEnd, DLDefinitionEnd:
			b.dlItemDepth--
		default:
			if b.inDL && b.dlItemDepth == 0 {
				sb.WriteString("</dl>")
				b.inDL = false
			}
		}

		switch tok.Kind {
		case Character:
			sb.WriteString(html.EscapeString(tok.Data))

		case LineBreak:
			sb.WriteString("<br>")

		case HorizontalRule:
			sb.WriteString("<hr>")

		case FormattingBegin:
			sb.WriteString(formatOpenTag(tok.Format))
		case FormattingEnd:
			sb.WriteString(formatCloseTag(tok.Format))

		case HeadingBegin:
			level := clampHeadingLevel(tok.HeadingLevel)
			b.headingStack = append(b.headingStack, level)
			fmt.Fprintf(sb, "<h%d%s>", level, idAttr(tok.ID))
		case HeadingEnd:
			level := 1
			if n := len(b.headingStack); n > 0 {
				level = b.headingStack[n-1]
				b.headingStack = b.headingStack[:n-1]
			}
			fmt.Fprintf(sb, "</h%d>", level)

		case ParagraphBegin:
			if b.tightListDepth == 0 {
				fmt.Fprintf(sb, "<p%s>", idAttr(tok.ID))
			}
		case ParagraphEnd:
			if b.tightListDepth == 0 {
				sb.WriteString("</p>")
			}

		case BlockquoteBegin:
			sb.WriteString("<blockquote>")
		case BlockquoteEnd:
			sb.WriteString("</blockquote>")

		case ListBegin:
			if tok.ListSpacing == DefaultTight {
				b.tightListDepth++
			}
			sb.WriteString(listOpenTag(tok.ListKindVal))
		case ListEnd:
			sb.WriteString(listCloseTag(tok.ListKindVal))
			if tok.ListSpacing == DefaultTight && b.tightListDepth > 0 {
				b.tightListDepth--
			}

		case ListItemBegin:
			if tok.ListKindVal == TaskList {
				checkedAttr := ""
				if tok.Checked {
					checkedAttr = " checked"
				}
				fmt.Fprintf(sb, `<li class="task-list-item"><input type="checkbox" disabled%s>`, checkedAttr)
			} else {
				sb.WriteString("<li>")
			}
		case ListItemEnd:
			sb.WriteString("</li>")

		case CodeBlockBegin:
			sb.WriteString("<pre>")
			sb.WriteString(codeOpenTag(tok.Target))
		case CodeBlockEnd:
			sb.WriteString("</code></pre>")

		case HtmlBlockBegin, HtmlBlockEnd:
			// Raw HTML blocks carry their literal markup on the Character
			// token between these brackets; nothing to emit at the
			// brackets themselves.

		case TableBegin:
			b.tableAlign = tok.TableAlign
			b.tableRow = 0
			sb.WriteString("<table><thead>")
		case TableEnd:
			sb.WriteString("</tbody></table>")
			b.tableAlign = nil

		case TableRowBegin:
			b.tableCol = 0
			sb.WriteString("<tr>")
		case TableRowEnd:
			sb.WriteString("</tr>")
			if b.tableRow == 0 {
				sb.WriteString("</thead><tbody>")
			}
			b.tableRow++

		case TableHeadingBegin:
			sb.WriteString("<th")
			sb.WriteString(alignAttr(b.tableAlign, b.tableCol))
			sb.WriteString(">")
		case TableHeadingEnd:
			sb.WriteString("</th>")
			b.tableCol++

		case TableCellBegin:
			sb.WriteString("<td")
			sb.WriteString(alignAttr(b.tableAlign, b.tableCol))
			sb.WriteString(">")
		case TableCellEnd:
			sb.WriteString("</td>")
			b.tableCol++

		case HyperlinkBegin:
			fmt.Fprintf(sb, `<a href="%s"%s>`, html.EscapeString(tok.Target), titleAttr(tok.Title))
		case HyperlinkEnd:
			sb.WriteString("</a>")

		case Image:
			fmt.Fprintf(sb, `<img src="%s" alt="%s"%s>`, html.EscapeString(tok.Target), html.EscapeString(tok.Data), titleAttr(tok.Title))

		case FootnoteRef:
			n := footnoteIndex(b.footnoteOrder, tok.Data)
			fmt.Fprintf(sb, `<sup id="fnref-%s"><a href="#fn-%s">%d</a></sup>`, html.EscapeString(tok.Data), html.EscapeString(tok.Data), n)

		case DLTitleBegin:
			sb.WriteString("<dt>")
		case DLTitleEnd:
			sb.WriteString("</dt>")
		case DLDefinitionBegin:
			sb.WriteString("<dd>")
		case DLDefinitionEnd:
			sb.WriteString("</dd>")

		case EOF:
			// nothing to emit
		}
	}
}

// renderFootnotes appends the collected footnote table as a single section,
// rendered once regardless of whether a reference preceded or followed its
// definition in the source document.
func (b *Bridge) renderFootnotes(sb *strings.Builder) {
	sb.WriteString(`<section class="footnotes"><ol>`)
	for _, label := range b.footnoteOrder {
		def := b.footnoteDefs[label]
		fmt.Fprintf(sb, `<li id="fn-%s">`, html.EscapeString(label))
		b.renderTokens(sb, def)
		fmt.Fprintf(sb, ` <a href="#fnref-%s">&#8617;</a></li>`, html.EscapeString(label))
	}
	sb.WriteString(`</ol></section>`)
}

func formatOpenTag(f FormatKind) string {
	switch f {
	case Strong:
		return "<strong>"
	case CodeSpan:
		return "<code>"
	default:
		return "<em>"
	}
}

func formatCloseTag(f FormatKind) string {
	switch f {
	case Strong:
		return "</strong>"
	case CodeSpan:
		return "</code>"
	default:
		return "</em>"
	}
}

func listOpenTag(k ListKind) string {
	switch k {
	case Ordered:
		return "<ol>"
	default:
		return `<ul>`
	}
}

func listCloseTag(k ListKind) string {
	if k == Ordered {
		return "</ol>"
	}
	return "</ul>"
}

func codeOpenTag(lang string) string {
	if lang == "" {
		return "<code>"
	}
	return fmt.Sprintf(`<code class="language-%s">`, html.EscapeString(lang))
}

func idAttr(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf(` id="%s"`, html.EscapeString(id))
}

func titleAttr(title string) string {
	if title == "" {
		return ""
	}
	return fmt.Sprintf(` title="%s"`, html.EscapeString(title))
}

func alignAttr(align []string, col int) string {
	if col >= len(align) || align[col] == "" {
		return ""
	}
	return fmt.Sprintf(` style="text-align:%s"`, align[col])
}

func clampHeadingLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

func footnoteIndex(order []string, label string) int {
	for i, l := range order {
		if l == label {
			return i + 1
		}
	}
	return 0
}

// Convert runs the Markdown tokenizer and bridge over src, then feeds the
// resulting HTML rune stream into the HTML5 tokenizer and tree builder,
// exactly as the pipeline's Markdown → HTML5 → DOM data-flow specifies.
func Convert(path string, src *source.Source, sink *reporter.Sink) *dom.Document {
	t := New(path, src)
	t.SetSink(sink)
	_, tokens := t.Run(CtxMarkdown)

	bridge := NewBridge(path, sink, t.footnoteOrder, t.footnoteDefs)
	rendered := string(bridge.Render(tokens))

	tok := tokenizer.New(rendered)
	tb := treebuilder.New(tok)
	tb.SetSink(sink, path)

	for {
		tok.SetAllowCDATA(tb.AllowCDATA())
		tt := tok.Next()
		tb.ProcessToken(tt)
		if tt.Type == tokenizer.EOF {
			break
		}
	}
	return tb.Document()
}
