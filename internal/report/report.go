// Package report renders scored and selected raid results into tabular
// chat reports. Rendering only reads its inputs; pagination keeps every
// emitted field within the transport's size limit.
package report

// Field is one named text block of a report payload.
type Field struct {
	Name  string
	Value string
}

// Report is a single transport-ready payload. The caller delivers the
// ordered sequence via the messaging transport.
type Report struct {
	Title       string
	Description string
	Footer      string
	Fields      []Field
}
