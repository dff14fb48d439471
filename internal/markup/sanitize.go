package markup

import "github.com/microcosm-cc/bluemonday"

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("strike", "div", "span", "br")
	p.AllowAttrs("target").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a")
	p.AllowStyles("text-align", "font-family", "text-decoration", "color", "font-size",
		"border-left", "padding-left", "margin", "max-width").Globally()
	p.RequireNoFollowOnLinks(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize strips scripts, event handlers and unknown styles from an HTML fragment while
// keeping the markup this package produces. The policy is safe for concurrent use.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return policy.Sanitize(html)
}

// SafeHTML is ToHTML followed by Sanitize.
func SafeHTML(s string) string {
	return Sanitize(ToHTML(s))
}
