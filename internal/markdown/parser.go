package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

// Document is a markdown source split into its frontmatter and body.
type Document struct {
	Meta map[string]any
	Body []byte
}

// Parser renders stored markdown bodies and splits source files. Only the
// splitting instance knows about frontmatter, so a body that opens with a
// thematic break (---) still renders as one.
type Parser struct {
	md   goldmark.Markdown
	meta goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	meta := goldmark.New(
		goldmark.WithExtensions(&frontmatter.Extender{}),
	)

	return &Parser{
		md:   md,
		meta: meta,
	}
}

// Render converts a markdown body to HTML. Raw HTML in the source is not passed through.
func (p *Parser) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Split separates the YAML frontmatter from the markdown body. The body is
// only cut when the frontmatter extension recognised a block.
func (p *Parser) Split(source []byte) *Document {
	context := parser.NewContext()
	p.meta.Parser().Parse(text.NewReader(source), parser.WithContext(context))

	data := frontmatter.Get(context)
	if data == nil {
		return &Document{Meta: map[string]any{}, Body: source}
	}

	meta := map[string]any{}
	err := data.Decode(&meta)
	if err != nil {
		meta = map[string]any{}
	}
	return &Document{Meta: meta, Body: stripFrontmatter(source)}
}

var delimiter = []byte("---")

// stripFrontmatter drops the leading --- block. The extension reports the
// decoded data but not where the block ends.
func stripFrontmatter(source []byte) []byte {
	source = bytes.TrimPrefix(source, []byte("\xef\xbb\xbf"))

	first, rest, ok := bytes.Cut(source, []byte("\n"))
	if !ok || !bytes.Equal(bytes.TrimSpace(first), delimiter) {
		return source
	}

	for len(rest) > 0 {
		line, next, _ := bytes.Cut(rest, []byte("\n"))
		if bytes.Equal(bytes.TrimSpace(line), delimiter) {
			return bytes.TrimLeft(next, "\r\n")
		}
		rest = next
	}

	// Unterminated frontmatter is treated as body
	return source
}

// String reads a frontmatter value as a string.
func (d *Document) String(key string) string {
	s, _ := d.Meta[key].(string)
	return s
}

// Strings reads a frontmatter list of strings, skipping other element types.
func (d *Document) Strings(key string) []string {
	items, ok := d.Meta[key].([]any)
	if !ok {
		return nil
	}

	var out []string
	for _, item := range items {
		s, ok := item.(string)
		if ok {
			out = append(out, s)
		}
	}
	return out
}
