package dispatch

import "strings"

// canonicalSectionOrder is the fixed presentation sequence for report
// bundles, regardless of the order the statements came back in.
var canonicalSectionOrder = []string{
	"new",
	"completed",
	"approval",
	"expir",
	"spend",
}

// ReorderSections sorts report sections into the canonical sequence by
// title keyword. Sections matching no keyword keep their relative order
// after the recognized ones.
func ReorderSections(sections []ReportSection) []ReportSection {
	if len(sections) < 2 {
		return sections
	}

	used := make([]bool, len(sections))
	ordered := make([]ReportSection, 0, len(sections))

	for _, keyword := range canonicalSectionOrder {
		for i, s := range sections {
			if used[i] {
				continue
			}
			if strings.Contains(strings.ToLower(s.Title), keyword) {
				ordered = append(ordered, s)
				used[i] = true
				break
			}
		}
	}
	for i, s := range sections {
		if !used[i] {
			ordered = append(ordered, s)
		}
	}
	return ordered
}
