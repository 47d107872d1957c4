package testutil

import (
	"regexp"
)

// ReplaceWithStaticTimestamps zeroes the timestamps, process IDs and line
// numbers that klog, the JSON logger and the standard log package write, so
// that captured log output can be compared verbatim.
//
//	I1018 15:12:57.953433   22183 keys.go:171] "generated key pair"
//	I0000 00:00:00.000000   00000 keys.go:000] "generated key pair"
//
//	{"ts":1729258473588.828,"caller":"rsa/keys.go:171","msg":"generated key pair","v":1}
//	{"ts":0000000000000.000,"caller":"rsa/keys.go:000","msg":"generated key pair","v":1}
//
//	2024/10/18 15:40:50 Not using config file
//	0000/00/00 00:00:00 Not using config file
func ReplaceWithStaticTimestamps(input string) string {
	for _, r := range staticReplacements {
		input = r.pattern.ReplaceAllString(input, r.replacement)
	}
	return input
}

// Order matters: the klog form with a process ID must be tried before the
// form without one.
var staticReplacements = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\d{4} \d{2}:\d{2}:\d{2}\.\d{6} +\d+`), "0000 00:00:00.000000   00000"},
	{regexp.MustCompile(`\d{4} \d{2}:\d{2}:\d{2}\.\d{6}`), "0000 00:00:00.000000"},
	{regexp.MustCompile(`"ts":\d+\.?\d*`), `"ts":0000000000000.000`},
	{regexp.MustCompile(`\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}`), "0000/00/00 00:00:00"},
	{regexp.MustCompile(`"caller":"([^"]+).go:\d+"`), `"caller":"$1.go:000"`},
	{regexp.MustCompile(` ([^:]+).go:\d+`), " $1.go:000"},
}
