package html

// StyleBlock is one <style> element found in a document.
//
// Start and End are byte offsets of the element's content: Start is the
// byte just after the start tag, End the first byte of the end tag (or the
// end of the document when the element is unterminated).
type StyleBlock struct {
	// Lang is the raw value of the lang attribute, empty when absent
	Lang    string
	Content string
	Start   int
	End     int
}
