package error

import "bytes"

// Locate computes a 1-based line and column for a byte offset into src by
// scanning for newlines. This is intentionally not cached on SourceError:
// spans are cheap two-int pairs and the scan only runs when a diagnostic is
// actually printed.
func Locate(src []byte, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	line = 1 + bytes.Count(src[:offset], []byte{'\n'})
	lastNL := bytes.LastIndexByte(src[:offset], '\n')
	col = offset - lastNL
	return line, col
}
