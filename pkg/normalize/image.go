package normalize

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultCDNBaseURL is the Cloudinary delivery base used when the
// configuration does not override it.
const DefaultCDNBaseURL = "https://res.cloudinary.com/devigo/image/upload"

// defaultCDNVersion is inserted when the stored identifier does not already
// carry a version segment.
const defaultCDNVersion = "v1"

// versionSegment matches a Cloudinary version path segment such as "v1" or
// "v1698700000".
var versionSegment = regexp.MustCompile(`^v\d+$`)

// ImageURL resolves an image-bearing field pair into one usable absolute URL.
//
// Resolution rules:
//   - A non-empty imageURL is authoritative and passed through verbatim.
//   - Otherwise, an image value that is already an absolute URL (has a URL
//     scheme) is passed through verbatim.
//   - Otherwise, the image value is treated as a CDN public id and an
//     absolute URL is synthesized as "<cdnBase>/<version>/<id>", inserting
//     the default version "v1" unless the identifier already starts with a
//     version segment.
//   - When both fields are empty the result is "" - an absent image is not
//     an error.
func ImageURL(imageURL, image, cdnBase string) string {
	if imageURL != "" {
		return imageURL
	}
	if image == "" {
		return ""
	}

	if parsed, err := url.Parse(image); err == nil && parsed.Scheme != "" {
		return image
	}

	if cdnBase == "" {
		cdnBase = DefaultCDNBaseURL
	}
	cdnBase = strings.TrimRight(cdnBase, "/")
	id := strings.TrimLeft(image, "/")

	if first, _, _ := strings.Cut(id, "/"); versionSegment.MatchString(first) {
		return cdnBase + "/" + id
	}
	return cdnBase + "/" + defaultCDNVersion + "/" + id
}
