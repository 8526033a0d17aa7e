package domain

// Report represents a complete console report
type Report struct {
	Title    string
	Location string
	Sections []ReportSection
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents one line within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
