package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_HeadingsAndParagraphs(t *testing.T) {
	input := `<html><head><title>The Frog King</title></head>
<body>
<nav><p>skip me</p></nav>
<h1>Chapter One</h1>
<p>In olden times when wishing
still helped one.</p>
<h2>The Well</h2>
<p>Close by the castle lay a forest.</p>
<ul><li>golden ball</li><li><p>cool fountain</p></li></ul>
<script>var x = 1;</script>
</body></html>`

	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader(input), "frog.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "The Frog King" {
		t.Errorf("expected title from <title>, got %q", tree.Title)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 top-level section, got %d", len(tree.Children))
	}

	ch := tree.Children[0]
	if ch.Title != "Chapter One" || len(ch.Children) != 2 {
		t.Fatalf("unexpected chapter: %q with %d children", ch.Title, len(ch.Children))
	}
	if !strings.HasPrefix(ch.Children[0].Text, "In olden times") {
		t.Errorf("unexpected first paragraph %q", ch.Children[0].Text)
	}

	well := ch.Children[1]
	var texts []string
	for _, c := range well.Children {
		texts = append(texts, c.Text)
	}
	want := []string{"Close by the castle lay a forest.", "golden ball", "cool fountain"}
	if len(texts) != len(want) {
		t.Fatalf("expected %q, got %q", want, texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("leaf %d: expected %q, got %q", i, want[i], texts[i])
		}
	}
}

func TestHTMLParser_TitleFallsBackToFilename(t *testing.T) {
	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader("<p>hi</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "page" {
		t.Errorf("expected %q, got %q", "page", tree.Title)
	}
	if len(tree.Children) != 1 || tree.Children[0].Text != "hi" {
		t.Errorf("unexpected children: %+v", tree.Children)
	}
}

func TestHeadingLevel(t *testing.T) {
	for tag, want := range map[string]int{"h1": 1, "h6": 6, "h7": 0, "hr": 0, "p": 0} {
		if got := headingLevel(tag); got != want {
			t.Errorf("headingLevel(%q) = %d, want %d", tag, got, want)
		}
	}
}
