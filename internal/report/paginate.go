package report

import "strings"

const codeFence = "```"

// appendFields appends name/value as one or more fields, splitting the
// value on line boundaries so every field stays within the limit. When
// the value is a fenced code block, each page is re-fenced so it remains
// independently well-formed. Continuation fields are named "...".
func appendFields(fields []Field, name, value string, limit int) []Field {
	if value == "" {
		return fields
	}
	if len(value) <= limit {
		return append(fields, Field{Name: name, Value: value})
	}

	fenced := strings.HasPrefix(value, codeFence) && strings.HasSuffix(value, codeFence)

	// Reserve room for the re-wrapped fences on every page.
	budget := limit
	if fenced {
		budget -= 2 * (len(codeFence) + 1)
	}

	lines := strings.Split(value, "\n")
	lineNum := 0
	count := 0

	for lineNum < len(lines) {
		var page strings.Builder

		for lineNum < len(lines) && (page.Len() == 0 || page.Len()+len(lines[lineNum])+1 < budget) {
			if page.Len() > 0 {
				page.WriteString("\n")
			}
			page.WriteString(lines[lineNum])
			lineNum++
		}

		text := page.String()
		if fenced {
			if !strings.HasPrefix(text, codeFence) {
				text = codeFence + "\n" + text
			}
			if !strings.HasSuffix(text, codeFence) {
				text += "\n" + codeFence
			}
		}

		count++
		fieldName := name
		if count > 1 {
			fieldName = "..."
		}
		fields = append(fields, Field{Name: fieldName, Value: text})
	}

	return fields
}
