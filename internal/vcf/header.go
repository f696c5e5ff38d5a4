package vcf

import "strings"

// Header directives read from ClinVar VCF files.
const (
	FileFormatToken    = "fileformat=VCFv4"
	FileDateDirective  = "##fileDate="
	ReferenceDirective = "##reference="
)

// IsHeaderLine reports whether line is a header or metadata line.
// The test is applied to every line on its own; there is no header/data latch.
func IsHeaderLine(line string) bool {
	return strings.HasPrefix(line, "#")
}

// HasFileFormat reports whether a header line declares VCF version 4.
func HasFileFormat(line string) bool {
	return strings.Contains(line, FileFormatToken)
}

// DirectiveValue returns the value of a "##key=value" header line when the
// line starts with directive.
func DirectiveValue(line, directive string) (string, bool) {
	if !strings.HasPrefix(line, directive) {
		return "", false
	}
	return strings.TrimRight(line[len(directive):], "\r\n"), true
}
