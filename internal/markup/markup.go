// Package markup converts the bracket-tag dialect used in CMS text fields and news bodies
// into HTML fragments.
//
// The conversion is an ordered pipeline: each stage consumes the output of the previous
// one, so container tags may already hold HTML produced by earlier stages. Tag content is
// matched non-greedily across lines, which means nested tags of the same type are not
// supported; the first closing tag wins.
package markup

import (
	"regexp"
	"strings"
)

// rule rewrites every match of pattern with replacement (regexp expansion syntax).
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

func newRule(pattern, replacement string) rule {
	return rule{pattern: regexp.MustCompile(pattern), replacement: replacement}
}

// stage is a named group of rules that runs as one pipeline step.
type stage struct {
	name  string
	rules []rule
}

const quoteStyle = "border-left:4px solid #e10600;padding-left:12px;margin:12px 0"

// pipeline order is significant; see the package documentation.
var pipeline = []stage{
	{
		name: "unescape",
		rules: []rule{
			newRule(`\\+\[`, "["),
			newRule(`\\+\]`, "]"),
		},
	},
	{
		// Editors on local keyboards produce SİZE/sıze, and CENTER with Cyrillic or
		// schwa letterforms; fold them to the canonical tag names.
		name: "glyphs",
		rules: []rule{
			newRule(`(?i)\[(/?)s[iıİ]ze(=|\])`, "[${1}SIZE${2}"),
			newRule(`(?i)\[(/?)c[eеЕəƏ]nt[eеЕəƏ]r\]`, "[${1}CENTER]"),
		},
	},
	{
		name: "containers",
		rules: []rule{
			newRule(`(?is)\[CENTER\](.*?)\[/CENTER\]`, `<div style="text-align:center">${1}</div>`),
			newRule(`(?is)\[FONT=["']?([^\]"']*)["']?\](.*?)\[/FONT\]`, `<span style="font-family:${1}">${2}</span>`),
		},
	},
	{
		name: "inline",
		rules: []rule{
			newRule(`(?is)\[B\](.*?)\[/B\]`, `<strong>${1}</strong>`),
			newRule(`(?is)\[I\](.*?)\[/I\]`, `<em>${1}</em>`),
			newRule(`(?is)\[U\](.*?)\[/U\]`, `<span style="text-decoration:underline">${1}</span>`),
			newRule(`(?is)\[S\](.*?)\[/S\]`, `<strike>${1}</strike>`),
		},
	},
	{
		name: "links",
		rules: []rule{
			newRule(`(?is)\[URL=["']?([^\]"']*)["']?\](.*?)\[/URL\]`, `<a href="${1}" target="_blank" rel="noopener noreferrer">${2}</a>`),
			newRule(`(?is)\[URL\](.*?)\[/URL\]`, `<a href="${1}" target="_blank" rel="noopener noreferrer">${1}</a>`),
			newRule(`(?is)\[IMG\](.*?)\[/IMG\]`, `<img src="${1}" alt="" style="max-width:100%">`),
		},
	},
	{
		name: "styles",
		rules: []rule{
			newRule(`(?is)\[COLOR=["']?([^\]"']*)["']?\](.*?)\[/COLOR\]`, `<span style="color:${1}">${2}</span>`),
			newRule(`(?is)\[SIZE=["']?(\d+)(?:px)?["']?\](.*?)\[/SIZE\]`, `<span style="font-size:${1}px">${2}</span>`),
		},
	},
	{
		name: "blocks",
		rules: []rule{
			newRule(`(?is)\[QUOTE(?:=[^\]]*)?\](.*?)\[/QUOTE\]`, `<blockquote style="`+quoteStyle+`">${1}</blockquote>`),
			newRule(`(?is)\[CODE\](.*?)\[/CODE\]`, `<pre><code>${1}</code></pre>`),
		},
	},
}

var newlines = strings.NewReplacer("\r\n", "<br>", "\n", "<br>")

// ToHTML converts bracket markup into an HTML fragment. Text content is not escaped;
// callers rendering untrusted input should pass the result through Sanitize.
func ToHTML(s string) string {
	if s == "" {
		return ""
	}
	for _, st := range pipeline {
		for _, r := range st.rules {
			s = r.pattern.ReplaceAllString(s, r.replacement)
		}
	}
	return newlines.Replace(s)
}
