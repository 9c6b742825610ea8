package types

import "time"

// PageContent holds the extracted text of a single page.
type PageContent struct {
	PageNum int    `json:"page_num"`
	Text    string `json:"text"`
}

// DocumentRecord is the extracted content of one uploaded file. RawText is
// the concatenation of non-empty page texts separated by blank lines; Pages
// is the parallel per-page breakdown with contiguous numbering from 1.
type DocumentRecord struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	RawText   string        `json:"raw_text"`
	Pages     []PageContent `json:"pages"`
	BlobPath  string        `json:"blob_path,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// ExtractionResult is what the PDF extraction step produces before a
// DocumentRecord is assembled.
type ExtractionResult struct {
	FullText string        `json:"full_text"`
	Pages    []PageContent `json:"pages"`
}
