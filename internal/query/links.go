package query

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// Link is a hypermedia affordance.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// RouteValues fill the {placeholders} of a route template.
type RouteValues map[string]string

var placeholder = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

// LinkBuilder renders absolute URIs for named routes.
type LinkBuilder struct {
	base   *url.URL
	routes map[string]string
}

// NewLinkBuilder validates the base URL and every route template.
func NewLinkBuilder(baseURL string, routes map[string]string) (*LinkBuilder, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, configErrorf("base url %q: %v", baseURL, err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, configErrorf("base url %q must be absolute http(s)", baseURL)
	}
	if base.RawQuery != "" || base.Fragment != "" {
		return nil, configErrorf("base url %q must not carry a query or fragment", baseURL)
	}
	base.Path = strings.TrimSuffix(base.Path, "/")
	base.RawPath = ""

	copied := make(map[string]string, len(routes))
	for name, tmpl := range routes {
		if !strings.HasPrefix(tmpl, "/") {
			return nil, configErrorf("route %q template %q must start with /", name, tmpl)
		}
		rest := placeholder.ReplaceAllString(tmpl, "")
		if strings.ContainsAny(rest, "{}") {
			return nil, configErrorf("route %q template %q has a malformed placeholder", name, tmpl)
		}
		copied[name] = tmpl
	}
	return &LinkBuilder{base: base, routes: copied}, nil
}

// HasRoute reports whether a route name is known.
func (b *LinkBuilder) HasRoute(route string) bool {
	_, ok := b.routes[route]
	return ok
}

// URI renders a route. Every placeholder needs a value; values are path
// escaped. A nil or empty query adds no query string.
func (b *LinkBuilder) URI(route string, values RouteValues, q url.Values) (string, error) {
	tmpl, ok := b.routes[route]
	if !ok {
		return "", configErrorf("unknown route %q", route)
	}
	var missing string
	path := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := values[name]
		if !ok && missing == "" {
			missing = name
		}
		return escapeSegment(v)
	})
	if missing != "" {
		return "", configErrorf("route %q needs a value for %q", route, missing)
	}

	uri := b.base.String() + path
	if len(q) > 0 {
		uri += "?" + q.Encode()
	}
	return uri, nil
}

// escapeSegment path escapes v but keeps commas, which separate id lists.
func escapeSegment(v string) string {
	return strings.ReplaceAll(url.PathEscape(v), "%2C", ",")
}

// Link renders a route into a Link.
func (b *LinkBuilder) Link(route, rel, method string, values RouteValues, q url.Values) (Link, error) {
	href, err := b.URI(route, values, q)
	if err != nil {
		return Link{}, err
	}
	return Link{Href: href, Rel: rel, Method: method}, nil
}

// LinkSpec names one affordance of a resource.
type LinkSpec struct {
	Route  string
	Rel    string
	Method string
}

// ResourceLinks describes the routes of one resource type.
type ResourceLinks struct {
	Item       string
	Affordance []LinkSpec
	Collection string
}

// ResourceLinker builds the item and collection links of one resource type.
type ResourceLinker struct {
	builder *LinkBuilder
	links   ResourceLinks
}

// NewResourceLinker checks that every referenced route is registered.
func NewResourceLinker(b *LinkBuilder, links ResourceLinks) (*ResourceLinker, error) {
	routes := []string{links.Item, links.Collection}
	for _, a := range links.Affordance {
		routes = append(routes, a.Route)
	}
	for _, r := range routes {
		if !b.HasRoute(r) {
			return nil, configErrorf("resource links reference unknown route %q", r)
		}
	}
	return &ResourceLinker{builder: b, links: links}, nil
}

// ItemLinks returns self followed by the resource's affordances. The self
// link carries fields when a projection was requested.
func (l *ResourceLinker) ItemLinks(values RouteValues, fields string) ([]Link, error) {
	var q url.Values
	if fields != "" {
		q = url.Values{ParamFields: {fields}}
	}
	self, err := l.builder.Link(l.links.Item, "self", http.MethodGet, values, q)
	if err != nil {
		return nil, err
	}
	links := []Link{self}
	for _, a := range l.links.Affordance {
		link, err := l.builder.Link(a.Route, a.Rel, a.Method, values, nil)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

// CollectionLinks returns self plus nextPage and previousPage when those
// pages exist.
func (l *ResourceLinker) CollectionLinks(values RouteValues, params ResourceParameters, hasNext, hasPrevious bool) ([]Link, error) {
	pages := []struct {
		rel     string
		page    int
		include bool
	}{
		{"self", params.PageNumber, true},
		{"nextPage", params.PageNumber + 1, hasNext},
		{"previousPage", params.PageNumber - 1, hasPrevious},
	}
	var links []Link
	for _, p := range pages {
		if !p.include {
			continue
		}
		link, err := l.builder.Link(l.links.Collection, p.rel, http.MethodGet, values, params.WithPage(p.page).Values())
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

// PageURI renders the collection URI for params.
func (l *ResourceLinker) PageURI(values RouteValues, params ResourceParameters) (string, error) {
	return l.builder.URI(l.links.Collection, values, params.Values())
}
