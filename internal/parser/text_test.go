package parser

import (
	"strings"
	"testing"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", tree.Title)
	}
	if len(tree.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(tree.Children))
	}

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		if tree.Children[i].Text != w {
			t.Errorf("child[%d]: expected %q, got %q", i, w, tree.Children[i].Text)
		}
		if !tree.Children[i].IsLeaf() {
			t.Errorf("child[%d]: expected a leaf", i)
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", tree.Title)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(tree.Children))
	}
}

func TestTextParser_BlankLineRuns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"single line", "Hello world", 1},
		{"multiple blank lines", "Para one.\n\n\n\nPara two.", 2},
		{"whitespace-only lines", "Para one.\n   \nPara two.", 2},
		{"trailing blank lines", "Para one.\n\n\n", 1},
	}
	p := &TextParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := p.Parse(strings.NewReader(tt.input), "x.txt")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tree.Children) != tt.want {
				t.Fatalf("expected %d children, got %d", tt.want, len(tree.Children))
			}
		})
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"a.txt", false},
		{"a.MD", false},
		{"a.markdown", false},
		{"a.html", false},
		{"a.htm", false},
		{"a.pdf", false},
		{"a.docx", false},
		{"a.csv", true},
		{"noext", true},
	}
	for _, tt := range tests {
		_, err := ForFile(tt.filename)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
		}
		if IsSupportedExtension(tt.filename) == tt.wantErr {
			t.Errorf("IsSupportedExtension(%q) disagrees with ForFile", tt.filename)
		}
	}
}

func TestForFileWith_PDFFallback(t *testing.T) {
	p, err := ForFileWith("scan.pdf", Options{PDFFallbackPdftotext: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pdf, ok := p.(*PDFParser)
	if !ok {
		t.Fatalf("expected *PDFParser, got %T", p)
	}
	if pdf.FallbackPdftotext {
		t.Error("expected pdftotext fallback disabled")
	}
}

func TestSplitBlankLines(t *testing.T) {
	got := splitBlankLines("one\ntwo  \n\n\nthree\n")
	if len(got) != 2 || got[0] != "one\ntwo" || got[1] != "three" {
		t.Errorf("unexpected blocks: %q", got)
	}
}
