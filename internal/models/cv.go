package models

// CV is an uploaded candidate document reduced to its extracted text.
type CV struct {
	Filename string
	Text     string
}

// InlineCV is a CV supplied directly in an analysis request. Content is base64.
type InlineCV struct {
	Filename string `json:"filename" validate:"required"`
	Content  string `json:"content" validate:"required"`
	FileType string `json:"filetype"`
}

type CVSummary struct {
	Filename   string `json:"filename"`
	Characters int    `json:"characters"`
}
