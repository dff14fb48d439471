package markup

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain text", input: "Salam", want: "Salam"},
		{name: "bold", input: "[B]Hi[/B]", want: "<strong>Hi</strong>"},
		{name: "lowercase tags", input: "[b]Hi[/b] [i]there[/i]", want: "<strong>Hi</strong> <em>there</em>"},
		{name: "underline", input: "[U]x[/U]", want: `<span style="text-decoration:underline">x</span>`},
		{name: "strike", input: "[S]x[/S]", want: "<strike>x</strike>"},
		{name: "center wraps bold", input: "[CENTER][B]x[/B][/CENTER]", want: `<div style="text-align:center"><strong>x</strong></div>`},
		{name: "font", input: `[FONT="Roboto"]x[/FONT]`, want: `<span style="font-family:Roboto">x</span>`},
		{name: "link", input: "[URL=https://club.az]Sayt[/URL]", want: `<a href="https://club.az" target="_blank" rel="noopener noreferrer">Sayt</a>`},
		{name: "bare link", input: "[URL]https://club.az[/URL]", want: `<a href="https://club.az" target="_blank" rel="noopener noreferrer">https://club.az</a>`},
		{name: "image", input: "[IMG]/a.jpg[/IMG]", want: `<img src="/a.jpg" alt="" style="max-width:100%">`},
		{name: "color", input: "[COLOR=#ff0000]q[/COLOR]", want: `<span style="color:#ff0000">q</span>`},
		{name: "size", input: "[SIZE=18]big[/SIZE]", want: `<span style="font-size:18px">big</span>`},
		{name: "size glyph variant", input: "[SİZE=18]big[/SİZE]", want: `<span style="font-size:18px">big</span>`},
		{name: "size dotless variant", input: "[sıze=12]x[/sıze]", want: `<span style="font-size:12px">x</span>`},
		{name: "center cyrillic variant", input: "[CЕNTER]x[/CЕNTER]", want: `<div style="text-align:center">x</div>`},
		{name: "quote", input: "[QUOTE]q[/QUOTE]", want: `<blockquote style="` + quoteStyle + `">q</blockquote>`},
		{name: "quote with author", input: "[QUOTE=Rəşad]q[/QUOTE]", want: `<blockquote style="` + quoteStyle + `">q</blockquote>`},
		{name: "code", input: "[CODE]x := 1[/CODE]", want: "<pre><code>x := 1</code></pre>"},
		{name: "escaped brackets", input: `\[B\]x\[/B\]`, want: "<strong>x</strong>"},
		{name: "doubly escaped brackets", input: `\\\[B\\\]x\\[/B\\]`, want: "<strong>x</strong>"},
		{name: "newlines", input: "a\nb\r\nc", want: "a<br>b<br>c"},
		{name: "multi-line capture", input: "[B]a\nb[/B]", want: "<strong>a<br>b</strong>"},
		{name: "nested same tag first close wins", input: "[B]a[B]b[/B]c[/B]", want: "<strong>a[B]b</strong>c[/B]"},
		{name: "unknown tag untouched", input: "[X]y[/X]", want: "[X]y[/X]"},
		{name: "unclosed tag untouched", input: "[B]open", want: "[B]open"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ToHTML(tt.input))
		})
	}
}

func TestToHTMLDocumentStructure(t *testing.T) {
	t.Parallel()

	src := "[CENTER][SIZE=20][B]Mövsüm açılışı[/B][/SIZE][/CENTER]\n" +
		"[URL=https://club.az/events][I]Təqvim[/I][/URL]\n" +
		"[QUOTE][COLOR=red]Təhlükəsizlik birinci![/COLOR][/QUOTE]"

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(ToHTML(src)))
	require.NoError(t, err)

	center := doc.Find(`div[style="text-align:center"]`)
	require.Equal(t, 1, center.Length())
	assert.Equal(t, "Mövsüm açılışı", center.Find("span strong").Text())

	link := doc.Find("a")
	require.Equal(t, 1, link.Length())
	href, _ := link.Attr("href")
	assert.Equal(t, "https://club.az/events", href)
	target, _ := link.Attr("target")
	assert.Equal(t, "_blank", target)
	assert.Equal(t, "Təqvim", link.Find("em").Text())

	assert.Equal(t, "Təhlükəsizlik birinci!", doc.Find("blockquote span").Text())
	assert.Equal(t, 2, doc.Find("br").Length())
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	out := Sanitize(`<strong onclick="x()">ok</strong><script>alert(1)</script>`)
	assert.Contains(t, out, "<strong>ok</strong>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")

	out = SafeHTML("[CENTER]x[/CENTER]")
	assert.Contains(t, out, "text-align")
	assert.Contains(t, out, ">x</div>")

	assert.Empty(t, Sanitize(""))
}
