package favicon

import (
	"bytes"
	"net/url"
	"regexp"

	"golang.org/x/net/html"
)

// Extractor produces icon candidates from an HTML document. Implementations
// are pure: no side effects, no network activity.
type Extractor interface {
	Name() string
	Extract(base *url.URL, doc []byte) []Candidate
}

// DOMExtractor walks a parsed HTML tree looking for <link> elements whose
// rel attribute mentions an icon. The parser is lenient, so malformed
// markup degrades to whatever well-formed tags it can recover.
type DOMExtractor struct{}

func (DOMExtractor) Name() string { return "dom" }

func (DOMExtractor) Extract(base *url.URL, doc []byte) []Candidate {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil
	}

	var out []Candidate
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "link" {
			var rel, href, sizes string
			for _, a := range n.Attr {
				switch a.Key {
				case "rel":
					rel = a.Val
				case "href":
					href = a.Val
				case "sizes":
					sizes = a.Val
				}
			}
			if c, ok := newCandidate(base, rel, href, sizes); ok {
				out = append(out, c)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// RegexExtractor is the markup-only fallback: it pattern-matches link tags
// and pulls rel/href/sizes out of each tag independently, so attribute
// order does not matter and broken surrounding markup is ignored.
type RegexExtractor struct{}

func (RegexExtractor) Name() string { return "regex" }

var (
	reLinkTag   = regexp.MustCompile(`(?is)<link\b[^>]*>`)
	reRelAttr   = regexp.MustCompile(`(?is)\brel\s*=\s*["']([^"']*)["']`)
	reHrefAttr  = regexp.MustCompile(`(?is)\bhref\s*=\s*["']([^"']*)["']`)
	reSizesAttr = regexp.MustCompile(`(?is)\bsizes\s*=\s*["']([^"']*)["']`)
)

func (RegexExtractor) Extract(base *url.URL, doc []byte) []Candidate {
	var out []Candidate
	for _, tag := range reLinkTag.FindAll(doc, -1) {
		var rel, href, sizes string
		if m := reRelAttr.FindSubmatch(tag); m != nil {
			rel = string(m[1])
		}
		if m := reHrefAttr.FindSubmatch(tag); m != nil {
			href = string(m[1])
		}
		if m := reSizesAttr.FindSubmatch(tag); m != nil {
			sizes = string(m[1])
		}
		if c, ok := newCandidate(base, rel, href, sizes); ok {
			out = append(out, c)
		}
	}
	return out
}

// newCandidate scores a link element's attributes. Elements without a
// usable rel or href yield no candidate.
func newCandidate(base *url.URL, rel, href, sizes string) (Candidate, bool) {
	prio, ok := scoreRel(rel)
	if !ok {
		return Candidate{}, false
	}
	abs, ok := resolveHref(base, href)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{URL: abs, RelPriority: prio, SizeScore: scoreSizes(sizes)}, true
}
