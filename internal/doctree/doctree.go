package doctree

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections and paragraphs
}

// DocNode is either a heading with children or a leaf holding one paragraph.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Paragraph text of a leaf
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Subsections and paragraphs
}

// IsLeaf reports whether the node carries paragraph text rather than a section.
func (n *DocNode) IsLeaf() bool {
	return n.Title == "" && len(n.Children) == 0
}

// Paragraph is a single unit of text ready for line breaking.
type Paragraph struct {
	Text       string   `json:"text"`
	Index      int      `json:"index"`                // Sequence number within document
	Breadcrumb []string `json:"breadcrumb,omitempty"` // Heading hierarchy, e.g. ["Chapter 1", "The Well"]
	Page       int      `json:"page,omitempty"`
}
