package view

import (
	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// TrustedHTML renders pre-sanitized markup, such as a post body rendered
// from repository content.
func TrustedHTML(html string) gomponents.Node {
	return gomponents.Raw(html)
}

// ContentURL returns u if its scheme is safe to place in an href or src,
// otherwise templ's invalid-URL placeholder. Catalog image links come from
// editable content files and go through here.
func ContentURL(u string) string {
	return string(templ.URL(u))
}
