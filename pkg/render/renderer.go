package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vango-dev/frameloop/pkg/vdom"
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables indented output. The extra whitespace becomes text nodes
	// when parsed, so pretty output must not be used as a loop baseline.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer turns virtual trees into HTML.
type Renderer struct {
	config Config
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders nodes to an HTML string.
func (r *Renderer) RenderToString(nodes ...vdom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, nodes...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams nodes to w.
func (r *Renderer) RenderToWriter(w io.Writer, nodes ...vdom.Node) error {
	for i := range nodes {
		if err := r.renderNode(w, &nodes[i], 0); err != nil {
			return err
		}
	}
	return nil
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.Node, depth int) error {
	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindComment:
		_, err := fmt.Fprintf(w, "<!--%s-->", escapeComment(node.Text))
		return err
	case vdom.KindMulti:
		for i := range node.Children {
			if err := r.renderNode(w, &node.Children[i], depth); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.Node, depth int) error {
	tag := node.Tag
	if tag == "" {
		return fmt.Errorf("render: element without tag")
	}

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node.Attrs); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if isVoidElement(tag) {
		if len(node.Children) > 0 {
			return fmt.Errorf("render: void element <%s> has children", tag)
		}
		r.newline(w)
		return nil
	}

	block := r.config.Pretty && hasElementChild(node) && !isInlineElement(tag)
	if block {
		r.newline(w)
	}
	for i := range node.Children {
		if err := r.renderNode(w, &node.Children[i], depth+1); err != nil {
			return err
		}
	}
	if block {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "</"+tag+">"); err != nil {
		return err
	}
	r.newline(w)
	return nil
}

// renderAttributes renders attributes in tree order.
func (r *Renderer) renderAttributes(w io.Writer, attrs []vdom.Attr) error {
	for _, a := range attrs {
		if a.Value == "" && isBooleanAttr(a.Name) {
			if _, err := io.WriteString(w, " "+a.Name); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, a.Name, escapeAttr(a.Value)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) newline(w io.Writer) {
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}

func hasElementChild(n *vdom.Node) bool {
	for i := range n.Children {
		switch n.Children[i].Kind {
		case vdom.KindElement:
			return true
		case vdom.KindMulti:
			if hasElementChild(&n.Children[i]) {
				return true
			}
		}
	}
	return false
}
