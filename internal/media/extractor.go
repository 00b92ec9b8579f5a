package media

import "regexp"

// DefaultDomain is the media host's domain marker used to recognize
// embedded references in article content.
const DefaultDomain = "res.cloudinary.com"

var (
	// publicIDFolderRe prefers a two-segment "folder/file" public id.
	publicIDFolderRe = regexp.MustCompile(`/([^/]+/[^/]+)\.\w+$`)
	// publicIDFileRe falls back to the bare filename.
	publicIDFileRe = regexp.MustCompile(`/([^/]+)\.\w+$`)
)

// Extractor finds embedded media references belonging to one media host.
type Extractor struct {
	domain string
	imgRe  *regexp.Regexp
}

func NewExtractor(domain string) *Extractor {
	if domain == "" {
		domain = DefaultDomain
	}
	return &Extractor{
		domain: domain,
		imgRe:  regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']*` + regexp.QuoteMeta(domain) + `[^"']*)["']`),
	}
}

// Refs returns every img-src URL in content that contains the host's domain
// marker, in order of first appearance. Duplicates are preserved; callers
// needing set semantics deduplicate themselves.
func (e *Extractor) Refs(content string) []string {
	if content == "" {
		return nil
	}

	var urls []string
	for _, m := range e.imgRe.FindAllStringSubmatch(content, -1) {
		urls = append(urls, m[1])
	}
	return urls
}

// PublicID derives the media host's stable identifier from a URL: the
// "folder/file" pair before the extension when present, else the bare
// filename. Malformed URLs yield "" and the caller skips deletion.
func (e *Extractor) PublicID(url string) string {
	if url == "" {
		return ""
	}

	if m := publicIDFolderRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := publicIDFileRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}
