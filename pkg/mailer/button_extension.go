package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindButton is the node kind for ButtonNode.
var KindButton = ast.NewNodeKind("Button")

// ButtonNode is a call-to-action link written as [!button|Label](URL),
// such as the "Reply" button of a contact email.
type ButtonNode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

func (n *ButtonNode) Kind() ast.NodeKind { return KindButton }

func (n *ButtonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URL":   string(n.URL),
		"Label": string(n.Label),
	}, nil)
}

var (
	buttonOpen = []byte("[!button|")

	// A button pointing anywhere else renders as its bare label.
	buttonSchemes = [][]byte{[]byte("https:"), []byte("http:"), []byte("mailto:")}
)

// NewButtonExtension registers the button syntax with a goldmark instance.
func NewButtonExtension() goldmark.Extender {
	return buttonExtension{}
}

type buttonExtension struct{}

func (buttonExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(buttonParser{}, 50)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(buttonRenderer{}, 50)))
}

type buttonParser struct{}

func (buttonParser) Trigger() []byte { return []byte{'['} }

// Parse reads [!button|Label](URL) from the current line. The label ends at
// the first ']' and the URL at the first ')'; template data placed in the URL
// must therefore be query-escaped.
func (buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, buttonOpen) {
		return nil
	}
	rest := line[len(buttonOpen):]

	labelEnd := bytes.IndexByte(rest, ']')
	if labelEnd < 0 || labelEnd+1 >= len(rest) || rest[labelEnd+1] != '(' {
		return nil
	}
	target := rest[labelEnd+2:]
	urlEnd := bytes.IndexByte(target, ')')
	if urlEnd < 0 {
		return nil
	}

	block.Advance(len(buttonOpen) + labelEnd + 2 + urlEnd + 1)
	return &ButtonNode{Label: rest[:labelEnd], URL: target[:urlEnd]}
}

type buttonRenderer struct{}

func (buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, renderButton)
}

func renderButton(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ButtonNode)
	label := util.EscapeHTML(n.Label)

	if !safeButtonURL(n.URL) {
		_, _ = w.Write(label)
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(n.URL))
	_, _ = w.WriteString(`" class="btn">`)
	_, _ = w.Write(label)
	_, _ = w.WriteString(`</a>`)
	return ast.WalkContinue, nil
}

func safeButtonURL(url []byte) bool {
	url = bytes.TrimSpace(url)
	for _, scheme := range buttonSchemes {
		if len(url) >= len(scheme) && bytes.EqualFold(url[:len(scheme)], scheme) {
			return true
		}
	}
	return false
}
