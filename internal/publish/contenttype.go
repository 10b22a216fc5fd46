package publish

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultContentType is sent for files no rule matches.
const DefaultContentType = "application/octet-stream"

type contentTypeRule struct {
	suffix string
	mime   string
}

// Checked in order; the first matching suffix wins. Matching is case-sensitive.
var contentTypeRules = []contentTypeRule{
	{".html", "text/html"},
	{".css", "text/css"},
	{".js", "application/javascript"},
	{".png", "image/png"},
	{".jpg", "image/jpeg"},
	{".jpeg", "image/jpeg"},
	{".svg", "image/svg+xml"},
}

// ContentType returns the content type for a file name from the suffix table.
func ContentType(name string) string {
	for _, r := range contentTypeRules {
		if strings.HasSuffix(name, r.suffix) {
			return r.mime
		}
	}

	return DefaultContentType
}

// detectContentType resolves the content type of the file at path. The suffix
// table always wins; content is only sniffed for unmatched files when sniff is
// set.
func detectContentType(path string, sniff bool) string {
	ct := ContentType(path)
	if ct != DefaultContentType || !sniff {
		return ct
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil || mt == nil {
		return DefaultContentType
	}

	return mt.String()
}
