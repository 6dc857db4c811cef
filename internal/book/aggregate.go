package book

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/gen-epub-book/internal/bookerr"
	"github.com/blackwell-systems/gen-epub-book/internal/element"
	"github.com/blackwell-systems/gen-epub-book/internal/util"
)

// Names of the exclusive element groups, as reported in errors.
const (
	GroupName        = "Name"
	GroupAuthor      = "Author"
	GroupDate        = "Date"
	GroupLanguage    = "Language"
	GroupCover       = "Cover and Network-Cover"
	GroupDescription = "Description, String-Description, and Network-Description"
)

// aggregator collects single-slot elements until finalize.
type aggregator struct {
	name, author, language *string
	date                   *time.Time

	cover       *ManifestEntry
	description *Source

	content    []*ManifestEntry
	nonContent []*ManifestEntry
}

// FromElements builds a Book from descriptor elements in order.
//
// Name, Author, Date and Language must each appear exactly once; at most one
// cover and one description may be given. A repeated single-slot element is
// reported with an amount of 2 however many times it repeats, since
// aggregation stops at the first.
func FromElements(elems []element.Element) (*Book, error) {
	var a aggregator
	for i, el := range elems {
		if err := a.add(i, el); err != nil {
			return nil, err
		}
	}
	return a.finalize()
}

func (a *aggregator) add(i int, el element.Element) error {
	switch el.Kind {
	case element.Name:
		return setOnce(&a.name, el.Text, GroupName)
	case element.Author:
		return setOnce(&a.author, el.Text, GroupAuthor)
	case element.Date:
		return setOnce(&a.date, el.Date, GroupDate)
	case element.Language:
		return setOnce(&a.language, el.Text, GroupLanguage)

	case element.Content:
		a.content = append(a.content, fileEntry(el.Path, el.Kind))
	case element.StringContent:
		a.content = append(a.content, &ManifestEntry{
			ID:          fmt.Sprintf("string-content-%d", i),
			ArchivePath: fmt.Sprintf("string-data-%d.html", i),
			Source:      Raw(el.Text),
			Origin:      el.Kind,
		})
	case element.ImageContent:
		img := fileEntry(el.Path, el.Kind)
		a.nonContent = append(a.nonContent, img)
		a.content = append(a.content, wrapImage(
			fmt.Sprintf("image-content-%d", i), fmt.Sprintf("image-data-%d.html", i), el.Kind, img))
	case element.NetworkImageContent:
		img := networkEntry(el)
		a.nonContent = append(a.nonContent, img)
		a.content = append(a.content, wrapImage(
			fmt.Sprintf("network-image-content-%d", i), fmt.Sprintf("network-image-data-%d.html", i), el.Kind, img))

	case element.Cover, element.NetworkCover:
		if a.cover != nil {
			return bookerr.NewWrongElementAmount(GroupCover, 2, "exactly", 1)
		}
		var img *ManifestEntry
		if el.Kind == element.Cover {
			img = fileEntry(el.Path, el.Kind)
		} else {
			img = networkEntry(el)
		}
		a.nonContent = append(a.nonContent, img)
		a.cover = wrapImage(fmt.Sprintf("cover-content-%d", i), fmt.Sprintf("cover-data-%d.html", i), el.Kind, img)

	case element.Include:
		a.nonContent = append(a.nonContent, fileEntry(el.Path, el.Kind))
	case element.NetworkInclude:
		a.nonContent = append(a.nonContent, networkEntry(el))

	case element.Description, element.StringDescription, element.NetworkDescription:
		if a.description != nil {
			return bookerr.NewWrongElementAmount(GroupDescription, 2, "exactly", 1)
		}
		var src Source
		switch el.Kind {
		case element.Description:
			src = File(el.Path)
		case element.StringDescription:
			src = Raw(el.Text)
		default:
			src = Network(el.URL)
		}
		a.description = &src
	}
	return nil
}

func (a *aggregator) finalize() (*Book, error) {
	if a.name == nil {
		return nil, bookerr.NewRequiredElementMissing(GroupName)
	}
	if a.author == nil {
		return nil, bookerr.NewRequiredElementMissing(GroupAuthor)
	}
	if a.date == nil {
		return nil, bookerr.NewRequiredElementMissing(GroupDate)
	}
	if a.language == nil {
		return nil, bookerr.NewRequiredElementMissing(GroupLanguage)
	}
	return &Book{
		Name:        *a.name,
		Author:      *a.author,
		Date:        *a.date,
		Language:    *a.language,
		Cover:       a.cover,
		Description: a.description,
		Content:     a.content,
		NonContent:  a.nonContent,
		UUID:        uuid.NewString(),
	}, nil
}

func setOnce[T any](slot **T, v T, group string) error {
	if *slot != nil {
		return bookerr.NewWrongElementAmount(group, 2, "exactly", 1)
	}
	*slot = &v
	return nil
}

func fileEntry(path string, origin element.Kind) *ManifestEntry {
	return &ManifestEntry{
		ID:          util.Slug(path),
		ArchivePath: util.ArchiveFilename(path),
		Source:      File(path),
		Origin:      origin,
	}
}

func networkEntry(el element.Element) *ManifestEntry {
	return &ManifestEntry{
		ID:          util.SlugFromURL(el.URL),
		ArchivePath: util.URLFilename(el.URL),
		Source:      Network(el.URL),
		Origin:      el.Kind,
	}
}
