package element

import (
	"bufio"
	"io"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/blackwell-systems/gen-epub-book/internal/bookerr"
)

// DefaultSeparator splits key from value in descriptor lines.
const DefaultSeparator = ":"

// ParseOptions tune the descriptor grammar.
type ParseOptions struct {
	// Separator between key and value; DefaultSeparator when empty.
	Separator string
	// FreeDate also accepts RFC2822 and "<unix seconds><+hh:mm>" dates.
	FreeDate bool
}

func (o ParseOptions) separator() string {
	if o.Separator == "" {
		return DefaultSeparator
	}
	return o.Separator
}

var unixWithZoneRe = regexp.MustCompile(`^(-?\d+)([+-])(\d{2}):(\d{2})$`)

// ParseLine parses a single descriptor line. Lines without a separator, with
// an empty value, or with an unrecognised key yield ok == false and no error.
func ParseLine(line string, opts ParseOptions) (el Element, ok bool, err error) {
	sep := opts.separator()
	line = strings.TrimSpace(line)

	i := strings.Index(line, sep)
	if i < 0 {
		return Element{}, false, nil
	}
	value := strings.TrimSpace(line[i+len(sep):])
	if value == "" {
		return Element{}, false, nil
	}
	kind, known := KindForKey(strings.TrimSpace(line[:i]))
	if !known {
		return Element{}, false, nil
	}

	el = Element{Kind: kind}
	switch kind {
	case Name, Author, Language, StringContent, StringDescription:
		el.Text = value
	case Content, ImageContent, Cover, Include, Description:
		el.Path = value
	case NetworkImageContent, NetworkCover, NetworkInclude, NetworkDescription:
		if el.URL, err = parseURL(value); err != nil {
			return Element{}, false, err
		}
	case Date:
		if el.Date, err = parseDate(value, opts.FreeDate); err != nil {
			return Element{}, false, err
		}
	}
	return el, true, nil
}

// ParseDescriptor reads every element from r in order. desc names the stream
// in I/O errors.
func ParseDescriptor(desc string, r io.Reader, opts ParseOptions) ([]Element, error) {
	var elems []Element

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		el, ok, err := ParseLine(sc.Text(), opts)
		if err != nil {
			return nil, err
		}
		if ok {
			elems = append(elems, el)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, bookerr.NewIO(desc, "read", "line split", err)
	}
	return elems, nil
}

func parseURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return nil, bookerr.NewParse("URL", "book element", "")
	}
	return u, nil
}

func parseDate(s string, free bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if !free {
		return time.Time{}, bookerr.NewParse("datetime", "book element", "not RFC3339")
	}

	if t, err := mail.ParseDate(s); err == nil {
		return t, nil
	}
	if t, ok := parseUnixWithZone(s); ok {
		return t, nil
	}
	return time.Time{}, bookerr.NewParse("datetime", "book element", "not RFC3339, RFC2822, nor Unix timestamp w/timezone")
}

// parseUnixWithZone accepts "1486564218+01:00".
func parseUnixWithZone(s string) (time.Time, bool) {
	m := unixWithZoneRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	hh, _ := strconv.Atoi(m[3])
	mm, _ := strconv.Atoi(m[4])
	offset := hh*3600 + mm*60
	if m[2] == "-" {
		offset = -offset
	}
	return time.Unix(secs, 0).In(time.FixedZone("", offset)), true
}
