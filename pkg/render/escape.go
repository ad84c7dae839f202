package render

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	// Attribute values additionally escape whitespace that would otherwise be
	// normalised by the parser.
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes text for safe inclusion in a double-quoted attribute.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// escapeComment makes s safe as comment content. "--" cannot appear inside
// a comment.
func escapeComment(s string) string {
	return strings.ReplaceAll(s, "--", "- -")
}
