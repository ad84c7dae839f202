package render

// isVoidElement reports whether tag has no content and no closing tag.
func isVoidElement(tag string) bool {
	switch tag {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// isInlineElement reports whether tag is phrasing content that pretty
// printing keeps on one line.
func isInlineElement(tag string) bool {
	switch tag {
	case "a", "abbr", "b", "bdi", "bdo", "br", "cite", "code", "data", "dfn",
		"em", "i", "kbd", "mark", "q", "s", "samp", "small", "span", "strong",
		"sub", "sup", "time", "u", "var", "wbr", "button", "label":
		return true
	}
	return false
}

// isBooleanAttr reports whether name is rendered without a value when its
// value is empty.
func isBooleanAttr(name string) bool {
	switch name {
	case "allowfullscreen", "async", "autofocus", "autoplay", "checked",
		"controls", "default", "defer", "disabled", "formnovalidate", "hidden",
		"ismap", "itemscope", "loop", "multiple", "muted", "nomodule",
		"novalidate", "open", "playsinline", "readonly", "required",
		"reversed", "selected":
		return true
	}
	return false
}
