// Package sanitize applies a naive allow-list filter to article HTML. It
// strips script blocks, neutralizes inline event handlers, and blanks image
// sources that are not hosted on the trusted media domain. It is not a full
// sanitizer and does not try to be one.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	scriptRe  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	handlerRe = regexp.MustCompile(`(?i)\son\w+\s*=`)
	imgRe     = regexp.MustCompile(`(?i)<img[^>]*src\s*=\s*["']([^"']*)["'][^>]*>`)
)

// HTML filters content, keeping img tags only when their src contains
// trustedImageDomain (e.g. "res.cloudinary.com").
func HTML(content, trustedImageDomain string) string {
	if content == "" {
		return ""
	}

	out := scriptRe.ReplaceAllString(content, "")
	out = handlerRe.ReplaceAllString(out, " data-removed=")

	out = imgRe.ReplaceAllStringFunc(out, func(tag string) string {
		m := imgRe.FindStringSubmatch(tag)
		if len(m) == 2 && strings.Contains(m[1], trustedImageDomain) {
			return tag
		}
		return `<img src="" alt="Removed image" />`
	})

	return out
}
