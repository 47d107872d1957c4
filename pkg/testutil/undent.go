package testutil

import (
	"strings"
)

// Undent strips the common leading indentation from every line of s, so YAML
// documents can be written inline in a test at the indentation of the code
// around them:
//
//	keyfile.Parse([]byte(testutil.Undent(`
//	    bits: 16
//	    public:
//	      e: "65537"
//	`)))
//
// A leading newline is dropped, as is the indentation of a final line that
// holds nothing else. Lines that are blank do not count towards the common
// indentation and come out empty.
func Undent(s string) string {
	s = strings.TrimPrefix(s, "\n")
	if s == "" {
		return ""
	}

	lines := strings.Split(s, "\n")
	if last := len(lines) - 1; isBlank(lines[last]) {
		lines[last] = ""
	}

	indent := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	for i, line := range lines {
		if isBlank(line) {
			lines[i] = ""
			continue
		}
		lines[i] = line[indent:]
	}
	return strings.Join(lines, "\n")
}

func isBlank(s string) bool {
	return strings.TrimLeft(s, " \t") == ""
}
