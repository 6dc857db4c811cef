// Package element models the raw book elements read from a descriptor and the
// line grammar they are written in.
package element

import (
	"net/url"
	"time"
)

// Kind identifies which book element a line declared.
type Kind int

const (
	Name Kind = iota
	Author
	Date
	Language
	Content
	StringContent
	ImageContent
	NetworkImageContent
	Cover
	NetworkCover
	Include
	NetworkInclude
	Description
	StringDescription
	NetworkDescription
)

var kindKeys = [...]string{
	Name:                "Name",
	Author:              "Author",
	Date:                "Date",
	Language:            "Language",
	Content:             "Content",
	StringContent:       "String-Content",
	ImageContent:        "Image-Content",
	NetworkImageContent: "Network-Image-Content",
	Cover:               "Cover",
	NetworkCover:        "Network-Cover",
	Include:             "Include",
	NetworkInclude:      "Network-Include",
	Description:         "Description",
	StringDescription:   "String-Description",
	NetworkDescription:  "Network-Description",
}

// String returns the descriptor key for k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindKeys) {
		return "Unknown"
	}
	return kindKeys[k]
}

// KindForKey looks up the kind declared by a descriptor key.
func KindForKey(key string) (Kind, bool) {
	for i, k := range kindKeys {
		if k == key {
			return Kind(i), true
		}
	}
	return 0, false
}

// Element is one parsed descriptor line. Exactly one payload field is set,
// depending on Kind:
//
//	Text: Name, Author, Language, String-Content, String-Description
//	Path: Content, Image-Content, Cover, Include, Description
//	URL:  Network-*
//	Date: Date
type Element struct {
	Kind Kind
	Text string
	Path string
	URL  *url.URL
	Date time.Time
}

// Value renders the payload the way it would appear in a descriptor.
func (e Element) Value() string {
	switch e.Kind {
	case Date:
		return e.Date.Format(time.RFC3339)
	case NetworkImageContent, NetworkCover, NetworkInclude, NetworkDescription:
		if e.URL == nil {
			return ""
		}
		return e.URL.String()
	case Content, ImageContent, Cover, Include, Description:
		return e.Path
	default:
		return e.Text
	}
}

func (e Element) String() string {
	return e.Kind.String() + ": " + e.Value()
}

// IsNetwork reports whether the element's payload is fetched over the network.
func (e Element) IsNetwork() bool {
	switch e.Kind {
	case NetworkImageContent, NetworkCover, NetworkInclude, NetworkDescription:
		return true
	}
	return false
}
