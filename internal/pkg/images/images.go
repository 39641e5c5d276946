package images

import "strings"

const DefaultPlaceholder = "assets/placeholder.jpg"

// Resolver turns stored image references into fetchable URLs.
type Resolver struct {
	UploadsBase string
	Placeholder string
}

func NewResolver(uploadsBase string) *Resolver {
	return &Resolver{
		UploadsBase: strings.TrimRight(uploadsBase, "/"),
		Placeholder: DefaultPlaceholder,
	}
}

// Resolve normalizes a stored reference: empty refs fall back to the
// placeholder, absolute http(s) URLs pass through, windows separators are
// fixed and any leading uploads/ segment is stripped before joining with the
// uploads base URL.
func (r *Resolver) Resolve(ref string) string {
	p := strings.TrimSpace(strings.ReplaceAll(ref, `\`, "/"))
	if p == "" {
		return r.Placeholder
	}

	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}

	p = strings.TrimPrefix(p, "/")
	p = strings.TrimPrefix(p, "uploads/")

	return r.UploadsBase + "/" + p
}
