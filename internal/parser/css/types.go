package css

// Import is one @import statement found in a stylesheet
type Import struct {
	// Statement is the whole statement as written
	Statement string
	// Target is the imported path without quotes or url()
	Target string
}
