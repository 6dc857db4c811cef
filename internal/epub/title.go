package epub

import (
	"bufio"
	"io"
	"regexp"
)

var titleMarkerRe = regexp.MustCompile(`<!-- ePub title: "([^"]+)" -->`)

// FindTitle returns the table-of-contents title from the first line of r
// carrying a `<!-- ePub title: "X" -->` marker.
func FindTitle(r io.Reader) (string, bool) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if m := titleMarkerRe.FindSubmatch(sc.Bytes()); m != nil {
			return string(m[1]), true
		}
	}
	return "", false
}
