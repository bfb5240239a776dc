// Package pages splits a single generated document into site pages and
// lays them out as a virtual file system.
//
// Generators emit one document with page marker comments:
//
//	<!-- PAGE: /index.html label="Home" -->
//	...page content...
//	<!-- PAGE: /about.html label="About" -->
//	...page content...
//
// A document with no markers is a single page at /index.html.
package pages

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Page is one split page.
type Page struct {
	Path    string
	Label   string
	Content string
}

// Site groups the split pages with the entry page called out.
type Site struct {
	Main  Page
	Pages []Page
}

// ParseSite splits a document and designates the entry page: the page
// at DefaultPath when present, otherwise the first page.
func ParseSite(doc string) (Site, error) {
	pages, err := ParseMultiPage(doc)
	if err != nil {
		return Site{}, err
	}
	s := Site{Main: pages[0], Pages: pages}
	for _, p := range pages {
		if p.Path == DefaultPath {
			s.Main = p
			break
		}
	}
	return s, nil
}

// VFS lays the site out as path → content, including the router
// scaffold for multi-page sites.
func (s Site) VFS() map[string]string {
	return GenerateVFS(s.Pages)
}

// markerRe matches a page marker. The label attribute is optional.
var markerRe = regexp.MustCompile(`<!--\s*PAGE:\s*(\S+)(?:\s+label="([^"]*)")?\s*-->`)

// ErrDuplicatePath is returned when two markers claim the same path.
var ErrDuplicatePath = errors.New("pages: duplicate page path")

// DefaultPath is where unmarked content lands.
const DefaultPath = "/index.html"

// ParseMultiPage splits a document on its page markers. Content before
// the first marker is ignored unless there are no markers at all, in
// which case the whole document becomes the page at DefaultPath.
func ParseMultiPage(doc string) ([]Page, error) {
	matches := markerRe.FindAllStringSubmatchIndex(doc, -1)
	if len(matches) == 0 {
		return []Page{{
			Path:    DefaultPath,
			Label:   labelFromPath(DefaultPath),
			Content: strings.TrimSpace(doc),
		}}, nil
	}

	seen := make(map[string]bool, len(matches))
	out := make([]Page, 0, len(matches))
	for i, m := range matches {
		path := doc[m[2]:m[3]]
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		if seen[path] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, path)
		}
		seen[path] = true

		label := ""
		if m[4] >= 0 {
			label = doc[m[4]:m[5]]
		}
		if label == "" {
			label = labelFromPath(path)
		}

		start := m[1]
		end := len(doc)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		out = append(out, Page{
			Path:    path,
			Label:   label,
			Content: strings.TrimSpace(doc[start:end]),
		})
	}
	return out, nil
}

// labelFromPath derives a human label from a path: "/about-us.html"
// becomes "About Us", "/" and "/index.html" become "Home".
func labelFromPath(path string) string {
	base := strings.TrimPrefix(path, "/")
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if base == "" || base == "index" {
		return "Home"
	}
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '/'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Marker renders the marker line for a page, the inverse of
// ParseMultiPage.
func Marker(p Page) string {
	return fmt.Sprintf(`<!-- PAGE: %s label=%q -->`, p.Path, p.Label)
}

// Join concatenates pages back into a single marked document.
func Join(pages []Page) string {
	var b strings.Builder
	for i, p := range pages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Marker(p))
		b.WriteString("\n")
		b.WriteString(p.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// GenerateVFS lays pages out as path → content. Multi-page sites also
// get a _router.js scaffold that maps paths to files and drives
// client-side navigation.
func GenerateVFS(pages []Page) map[string]string {
	vfs := make(map[string]string, len(pages)+1)
	for _, p := range pages {
		vfs[p.Path] = p.Content
	}
	if len(pages) > 1 {
		vfs["/_router.js"] = routerScript(pages)
	}
	return vfs
}

func routerScript(pages []Page) string {
	sorted := make([]Page, len(pages))
	copy(sorted, pages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var b strings.Builder
	b.WriteString("// Generated router. Maps site paths to page files.\n")
	b.WriteString("const routes = {\n")
	for _, p := range sorted {
		fmt.Fprintf(&b, "  %q: { file: %q, label: %q },\n", p.Path, p.Path, p.Label)
	}
	b.WriteString("};\n\n")
	b.WriteString(`export function navigate(path, replace = false) {
  const route = routes[path];
  if (!route) {
    console.warn("unknown route", path);
    return false;
  }
  if (replace) {
    history.replaceState({ path }, route.label, path);
  } else {
    history.pushState({ path }, route.label, path);
  }
  window.dispatchEvent(new CustomEvent("route", { detail: route }));
  return true;
}

export { routes };
`)
	return b.String()
}
