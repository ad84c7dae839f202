package vdom

import (
	"strconv"
	"strings"
)

// attr creates an Attr with the given name and value.
func attr(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// Attribute creates an arbitrary attribute.
func Attribute(name, value string) Attr { return attr(name, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaLive sets the aria-live attribute.
func AriaLive(mode string) Attr { return attr("aria-live", mode) }

// TabIndex sets the tabindex attribute.
func TabIndex(index int) Attr { return attr("tabindex", strconv.Itoa(index)) }

// TitleAttr sets the title attribute.
func TitleAttr(title string) Attr { return attr("title", title) }

// Form attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Boolean attributes render with an empty value.

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", "") }

// Checked sets the checked attribute.
func Checked() Attr { return attr("checked", "") }

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", "") }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }
