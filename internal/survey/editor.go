package survey

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"surveyflow/internal/model"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugHyphens  = regexp.MustCompile(`-+`)
)

const (
	DefaultVersion = "1.0"
	DefaultAuthor  = "Unknown"
	dateLayout     = "2006-01-02"
)

// NextVersion bumps the minor part of a "major.minor" version string.
// An unparsable major becomes 1 and an unparsable minor becomes 0.
func NextVersion(v string) string {
	parts := strings.Split(v, ".")
	major, err := strconv.Atoi(parts[0])
	if err != nil || major == 0 {
		major = 1
	}
	minor := 0
	if len(parts) > 1 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			minor = n
		}
	}
	return strconv.Itoa(major) + "." + strconv.Itoa(minor+1)
}

// NewMetadata returns metadata for a freshly created survey, keeping any
// version and author the caller supplied.
func NewMetadata(given *model.Metadata, now time.Time) *model.Metadata {
	md := &model.Metadata{
		Created: now.Format(dateLayout),
		Version: DefaultVersion,
		Author:  DefaultAuthor,
	}
	if given != nil {
		if given.Version != "" {
			md.Version = given.Version
		}
		if given.Author != "" {
			md.Author = given.Author
		}
	}
	return md
}

// UpdatedMetadata returns metadata for a new revision of prev.
func UpdatedMetadata(prev, given *model.Metadata, now time.Time) *model.Metadata {
	md := &model.Metadata{
		Created: now.Format(dateLayout),
		Version: NextVersion(DefaultVersion),
		Author:  DefaultAuthor,
	}
	if prev != nil {
		if prev.Created != "" {
			md.Created = prev.Created
		}
		version := prev.Version
		if version == "" {
			version = DefaultVersion
		}
		md.Version = NextVersion(version)
		if prev.Author != "" {
			md.Author = prev.Author
		}
	}
	if given != nil && given.Author != "" {
		md.Author = given.Author
	}
	return md
}

// Duplicate returns a deep copy of s under newID with fresh metadata.
func Duplicate(s *model.Survey, newID string, now time.Time) *model.Survey {
	dup := Clone(s)
	dup.ID = newID
	dup.Title = s.Title + " (copy)"
	author := DefaultAuthor
	if s.Metadata != nil && s.Metadata.Author != "" {
		author = s.Metadata.Author
	}
	dup.Metadata = &model.Metadata{
		Created: now.Format(dateLayout),
		Version: DefaultVersion,
		Author:  author,
	}
	return dup
}

// Clone deep-copies s so the copy shares no slices or pointers with it.
func Clone(s *model.Survey) *model.Survey {
	if s == nil {
		return nil
	}
	out := *s
	if s.Metadata != nil {
		md := *s.Metadata
		out.Metadata = &md
	}
	if s.Sections != nil {
		out.Sections = make([]model.Section, len(s.Sections))
	}
	for i, sec := range s.Sections {
		out.Sections[i] = sec
		if sec.Questions == nil {
			continue
		}
		out.Sections[i].Questions = make([]model.Question, len(sec.Questions))
		for j, q := range sec.Questions {
			if q.Options != nil {
				q.Options = append([]string{}, q.Options...)
			}
			if q.Validation != nil {
				v := *q.Validation
				if v.Min != nil {
					v.Min = model.IntPtr(*v.Min)
				}
				if v.Max != nil {
					v.Max = model.IntPtr(*v.Max)
				}
				q.Validation = &v
			}
			out.Sections[i].Questions[j] = q
		}
	}
	return &out
}

// Slug derives a survey id from a title: lower case ASCII letters, digits,
// underscores and single hyphens. It returns "" when nothing usable remains.
func Slug(title string) string {
	id := nonSlugChars.ReplaceAllString(strings.ToLower(title), "")
	id = slugSpaces.ReplaceAllString(id, "-")
	id = slugHyphens.ReplaceAllString(id, "-")
	return strings.Trim(id, "-")
}
