package epubgen

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// bodyContext is the parse context for chapter fragments: the rendered
// Markdown is body content, never a full document.
var bodyContext = &html.Node{
	Type:     html.ElementNode,
	Data:     "body",
	DataAtom: atom.Body,
}

// sanitizeFragment parses a rendered HTML fragment, removes script and
// style elements, strips event handler and unsafe-URI attributes, resolves
// local image references through resolve, and serialises the result back to
// a well-formed XHTML fragment.
func sanitizeFragment(data []byte, resolve imageResolver, warn func(string)) (string, error) {
	nodes, err := html.ParseFragment(bytes.NewReader(data), bodyContext)
	if err != nil {
		return "", err
	}

	// Re-root the fragment so every node has a parent during cleaning.
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	cleanNode(container)
	resolveImageNodes(container, resolve, warn)

	var buf bytes.Buffer
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		renderXHTML(&buf, c)
	}
	return strings.TrimSpace(buf.String()), nil
}

// voidElements lists the HTML void elements, which must be serialised
// self-closed for the output to parse as XML.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// renderXHTML serialises the subtree rooted at n as well-formed XHTML.
// html.Render emits HTML5 syntax, where void elements carry no closing
// slash and XML parsers reject the result, so serialisation is done here.
// Comment nodes are dropped.
func renderXHTML(buf *bytes.Buffer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(xmlEscape(n.Data))
	case html.ElementNode:
		buf.WriteByte('<')
		buf.WriteString(n.Data)
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + a.Key
			}
			buf.WriteByte(' ')
			buf.WriteString(key)
			buf.WriteString(`="`)
			buf.WriteString(xmlEscape(a.Val))
			buf.WriteByte('"')
		}
		if voidElements[n.DataAtom] && n.FirstChild == nil {
			buf.WriteString("/>")
			return
		}
		buf.WriteByte('>')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderXHTML(buf, c)
		}
		buf.WriteString("</")
		buf.WriteString(n.Data)
		buf.WriteByte('>')
	}
}

// cleanNode recursively removes <script> and <style> elements and strips
// event handler and unsafe-URI attributes from the subtree rooted at n.
func cleanNode(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.ElementNode && (c.DataAtom == atom.Script || c.DataAtom == atom.Style) {
			n.RemoveChild(c)
			continue
		}
		if c.Type == html.ElementNode {
			stripUnsafeAttributes(c)
		}
		cleanNode(c)
	}
}

// stripUnsafeAttributes removes event handler attributes (on*) and
// href/src values with disallowed URI schemes from the node.
func stripUnsafeAttributes(n *html.Node) {
	cleaned := n.Attr[:0]
	for _, attr := range n.Attr {
		if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
			continue
		}
		if isURIAttribute(attr) && !isSafeURI(attr.Val) {
			continue
		}
		cleaned = append(cleaned, attr)
	}
	n.Attr = cleaned
}

// isURIAttribute reports whether attr may contain a URL and should be
// protocol-sanitised.
func isURIAttribute(attr html.Attribute) bool {
	if attr.Key == "href" || attr.Key == "src" {
		return true
	}
	if attr.Namespace == "xlink" && attr.Key == "href" {
		return true
	}
	return attr.Key == "xlink:href"
}

// isSafeURI validates URI values for href/src-like attributes. Allowed:
// relative paths and fragments, http, https, mailto, and data:image/*.
func isSafeURI(raw string) bool {
	v := strings.TrimSpace(raw)
	if v == "" {
		return true
	}
	if strings.HasPrefix(v, "#") || strings.HasPrefix(v, "/") || strings.HasPrefix(v, "./") || strings.HasPrefix(v, "../") || strings.HasPrefix(v, "?") {
		return true
	}

	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return true
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return true
	case "data":
		return strings.HasPrefix(strings.ToLower(v), "data:image/")
	default:
		return false
	}
}

// resolveImageNodes rewrites local <img> references to the archive-relative
// hrefs assigned by the asset manager. References without a registered
// payload are replaced by a visible placeholder rather than left dangling;
// remote (http/https) and data URIs pass through untouched.
func resolveImageNodes(n *html.Node, resolve imageResolver, warn func(string)) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if c.Type == html.ElementNode && c.DataAtom == atom.Img {
			if !resolveImageNode(c, resolve) {
				name := imageAttr(c, "src")
				warn(fmt.Sprintf("image reference %q has no registered payload; rendered as placeholder", name))
				n.InsertBefore(missingImageNode(c), c)
				n.RemoveChild(c)
			}
			continue
		}
		resolveImageNodes(c, resolve, warn)
	}
}

// resolveImageNode rewrites the src of one <img> node. It returns false
// when the reference is local but unknown to the resolver.
func resolveImageNode(n *html.Node, resolve imageResolver) bool {
	src := imageAttr(n, "src")
	if src == "" || isRemoteRef(src) {
		return true
	}
	href, ok := resolve(src)
	if !ok {
		return false
	}
	for i, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == "src" {
			n.Attr[i].Val = href
		}
	}
	return true
}

// missingImageNode builds the placeholder element for an unresolved image,
// reusing the alt text when present.
func missingImageNode(img *html.Node) *html.Node {
	label := imageAttr(img, "alt")
	if label == "" {
		label = imageAttr(img, "src")
	}
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "class", Val: "missing-image"}},
	}
	span.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: "[missing image: " + label + "]",
	})
	return span
}

// isRemoteRef reports whether ref points outside the archive (absolute URL
// or embedded data URI).
func isRemoteRef(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:")
}

// imageAttr returns the value of the named un-namespaced attribute on n.
func imageAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// xmlEscaper escapes the five XML special characters for use in text
// content and attribute values.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// xmlEscape escapes s for safe inclusion in XML text or attribute content.
func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}

// collapseWhitespace replaces runs of whitespace characters with a single
// space. Returns the empty string when the input is all whitespace.
func collapseWhitespace(s string) string {
	var buf strings.Builder
	inSpace := false
	hasNonSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inSpace = true
		} else {
			if inSpace && buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteRune(r)
			inSpace = false
			hasNonSpace = true
		}
	}
	if !hasNonSpace {
		return ""
	}
	return buf.String()
}

// stripBOM removes a leading UTF-8 BOM (0xEF 0xBB 0xBF) from s, if present.
func stripBOM(s string) string {
	if len(s) >= 3 && s[0] == 0xEF && s[1] == 0xBB && s[2] == 0xBF {
		return s[3:]
	}
	return s
}
