package el

import (
	"github.com/vango-dev/frameloop/pkg/arena"
	"github.com/vango-dev/frameloop/pkg/vdom"
)

// Document

func Html(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "html", args...)
}
func Head(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "head", args...)
}
func Body(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "body", args...)
}
func Title(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "title", args...)
}
func Meta(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "meta", args...)
}
func LinkEl(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "link", args...)
}
func Base(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "base", args...)
}
func Style(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "style", args...)
}
func Script(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "script", args...)
}
func Noscript(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "noscript", args...)
}

// Sections

func Header(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "header", args...)
}
func Footer(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "footer", args...)
}
func Main(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "main", args...)
}
func Nav(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "nav", args...)
}
func Section(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "section", args...)
}
func Article(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "article", args...)
}
func Aside(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "aside", args...)
}
func Address(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "address", args...)
}
func H1(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "h1", args...)
}
func H2(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "h2", args...)
}
func H3(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "h3", args...)
}
func H4(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "h4", args...)
}
func H5(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "h5", args...)
}
func H6(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "h6", args...)
}
func Hgroup(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "hgroup", args...)
}

// Grouping

func Div(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "div", args...)
}
func P(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "p", args...)
}
func Pre(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "pre", args...)
}
func Blockquote(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "blockquote", args...)
}
func Ul(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "ul", args...)
}
func Ol(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "ol", args...)
}
func Li(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "li", args...)
}
func Dl(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "dl", args...)
}
func Dt(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "dt", args...)
}
func Dd(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "dd", args...)
}
func Hr(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "hr", args...)
}
func Figure(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "figure", args...)
}
func Figcaption(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "figcaption", args...)
}

// Text-level

func A(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "a", args...)
}
func Span(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "span", args...)
}
func Strong(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "strong", args...)
}
func Em(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "em", args...)
}
func B(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "b", args...)
}
func I(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "i", args...)
}
func U(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "u", args...)
}
func S(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "s", args...)
}
func Small(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "small", args...)
}
func Mark(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "mark", args...)
}
func Sub(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "sub", args...)
}
func Sup(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "sup", args...)
}
func Code(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "code", args...)
}
func Kbd(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "kbd", args...)
}
func Samp(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "samp", args...)
}
func Var(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "var", args...)
}
func Abbr(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "abbr", args...)
}
func Time_(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "time", args...)
}
func Cite(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "cite", args...)
}
func Q(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "q", args...)
}
func Br(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "br", args...)
}
func Wbr(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "wbr", args...)
}

// Forms

func Form(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "form", args...)
}
func Input(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "input", args...)
}
func Textarea(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "textarea", args...)
}
func Select(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "select", args...)
}
func Option(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "option", args...)
}
func Optgroup(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "optgroup", args...)
}
func Button(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "button", args...)
}
func Label(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "label", args...)
}
func Fieldset(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "fieldset", args...)
}
func Legend(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "legend", args...)
}
func Datalist(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "datalist", args...)
}
func Output(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "output", args...)
}
func Progress(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "progress", args...)
}
func Meter(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "meter", args...)
}

// Tables

func Table(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "table", args...)
}
func Thead(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "thead", args...)
}
func Tbody(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "tbody", args...)
}
func Tfoot(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "tfoot", args...)
}
func Tr(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "tr", args...)
}
func Th(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "th", args...)
}
func Td(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "td", args...)
}
func Caption(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "caption", args...)
}
func Colgroup(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "colgroup", args...)
}
func Col(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "col", args...)
}

// Embedded

func Img(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "img", args...)
}
func Picture(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "picture", args...)
}
func Source(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "source", args...)
}
func Video(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "video", args...)
}
func Audio(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "audio", args...)
}
func Track(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "track", args...)
}
func Iframe(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "iframe", args...)
}
func Canvas(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "canvas", args...)
}
func Svg(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "svg", args...)
}
func Path(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "path", args...)
}
func Circle(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "circle", args...)
}
func Rect(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "rect", args...)
}
func G(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "g", args...)
}

// Interactive

func Details(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "details", args...)
}
func Summary(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "summary", args...)
}
func Dialog(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "dialog", args...)
}
func Menu(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "menu", args...)
}
func Template(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "template", args...)
}
func Slot(a *arena.Arena, args ...any) vdom.Node {
	return Elem(a, "slot", args...)
}

// Custom builds an element with an arbitrary tag, such as a custom element.
func Custom(a *arena.Arena, tag string, args ...any) vdom.Node {
	return Elem(a, tag, args...)
}
