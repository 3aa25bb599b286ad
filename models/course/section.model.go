package course

import "gorm.io/gorm"

// Section type values. Exactly one payload field is populated per type; the
// authoring validators enforce the variant at creation time.
const (
	SectionText  = "TEXT"
	SectionVideo = "VIDEO"
	SectionPdf   = "PDF"
	SectionQuiz  = "QUIZ"
)

// Section represents one unit of content within a module. TEXT sections carry
// TextContent, VIDEO a VideoURL, PDF a PdfURL; QUIZ sections own a Quiz row.
type Section struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	SectionType string `json:"section_type" gorm:"default:'TEXT'"`
	TextContent string `json:"text_content,omitempty" gorm:"type:text"`
	VideoURL    string `json:"video_url,omitempty"`
	PdfURL      string `json:"pdf_url,omitempty"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Order within module
	IsDeleted   bool   `gorm:"default:false"`
}
