// Package dom defines the live document primitives the diff engine drives,
// a headless document built on golang.org/x/net/html, and the loader that
// mirrors an existing container into a virtual tree.
//
// Documents are generic over their node type. The headless document uses
// *html.Node; the browser document in package jsdom uses js.Value.
package dom
