package pages

import (
	"errors"
	"strings"
	"testing"
)

const multiDoc = `<!-- PAGE: /index.html label="Home" -->
<h1>Welcome</h1>
<!-- PAGE: /about.html label="About Us" -->
<h1>About</h1>
<!-- PAGE: /contact.html -->
<h1>Contact</h1>`

func TestParseMultiPage(t *testing.T) {
	got, err := ParseMultiPage(multiDoc)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("pages = %d, want 3", len(got))
	}
	if got[0].Path != "/index.html" || got[0].Label != "Home" || got[0].Content != "<h1>Welcome</h1>" {
		t.Fatalf("page[0] = %+v", got[0])
	}
	if got[1].Label != "About Us" {
		t.Fatalf("page[1].Label = %q", got[1].Label)
	}
	// Missing label derives from the path.
	if got[2].Label != "Contact" {
		t.Fatalf("page[2].Label = %q", got[2].Label)
	}
}

func TestParseNoMarkers(t *testing.T) {
	got, err := ParseMultiPage("<h1>Only page</h1>")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("pages = %d, want 1", len(got))
	}
	if got[0].Path != DefaultPath || got[0].Label != "Home" {
		t.Fatalf("page = %+v", got[0])
	}
	if got[0].Content != "<h1>Only page</h1>" {
		t.Fatalf("content = %q", got[0].Content)
	}
}

func TestParseDuplicatePath(t *testing.T) {
	doc := `<!-- PAGE: /a.html -->
one
<!-- PAGE: /a.html -->
two`
	if _, err := ParseMultiPage(doc); !errors.Is(err, ErrDuplicatePath) {
		t.Fatalf("err = %v, want ErrDuplicatePath", err)
	}
}

func TestParseNormalizesRelativePath(t *testing.T) {
	got, err := ParseMultiPage(`<!-- PAGE: about.html -->
body`)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Path != "/about.html" {
		t.Fatalf("path = %q", got[0].Path)
	}
}

func TestParsePreambleIgnored(t *testing.T) {
	doc := "generator chatter\n" + multiDoc
	got, err := ParseMultiPage(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || strings.Contains(got[0].Content, "chatter") {
		t.Fatalf("preamble leaked into page[0]: %q", got[0].Content)
	}
}

func TestJoinParseRoundTrip(t *testing.T) {
	orig, err := ParseMultiPage(multiDoc)
	if err != nil {
		t.Fatal(err)
	}
	again, err := ParseMultiPage(Join(orig))
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != len(orig) {
		t.Fatalf("round trip: %d pages, want %d", len(again), len(orig))
	}
	for i := range orig {
		if orig[i].Path != again[i].Path || orig[i].Label != again[i].Label || orig[i].Content != again[i].Content {
			t.Fatalf("page %d changed: %+v vs %+v", i, orig[i], again[i])
		}
	}
}

func TestLabelFromPath(t *testing.T) {
	cases := map[string]string{
		"/index.html":    "Home",
		"/":              "Home",
		"/about-us.html": "About Us",
		"/pricing.html":  "Pricing",
		"/faq_page.html": "Faq Page",
	}
	for path, want := range cases {
		if got := labelFromPath(path); got != want {
			t.Errorf("labelFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestGenerateVFSMultiPage(t *testing.T) {
	pgs, _ := ParseMultiPage(multiDoc)
	vfs := GenerateVFS(pgs)
	if len(vfs) != 4 {
		t.Fatalf("vfs entries = %d, want 4", len(vfs))
	}
	router, ok := vfs["/_router.js"]
	if !ok {
		t.Fatal("multi-page vfs has no router")
	}
	for _, p := range pgs {
		if vfs[p.Path] != p.Content {
			t.Errorf("vfs[%s] = %q", p.Path, vfs[p.Path])
		}
		if !strings.Contains(router, p.Path) {
			t.Errorf("router does not mention %s", p.Path)
		}
	}
}

func TestGenerateVFSSinglePage(t *testing.T) {
	pgs, _ := ParseMultiPage("<h1>hi</h1>")
	vfs := GenerateVFS(pgs)
	if len(vfs) != 1 {
		t.Fatalf("vfs entries = %d, want 1", len(vfs))
	}
	if _, ok := vfs["/_router.js"]; ok {
		t.Fatal("single-page vfs should not get a router")
	}
}

func TestParseSitePicksIndexAsMain(t *testing.T) {
	doc := `<!-- PAGE: /about.html -->
about
<!-- PAGE: /index.html -->
home`
	s, err := ParseSite(doc)
	if err != nil {
		t.Fatal(err)
	}
	if s.Main.Path != "/index.html" {
		t.Fatalf("main = %q, want /index.html", s.Main.Path)
	}
	if len(s.Pages) != 2 {
		t.Fatalf("pages = %d, want 2", len(s.Pages))
	}
	if vfs := s.VFS(); len(vfs) != 3 {
		t.Fatalf("vfs entries = %d, want 3", len(vfs))
	}
}

func TestParseSiteFallsBackToFirstPage(t *testing.T) {
	s, err := ParseSite(`<!-- PAGE: /pricing.html -->
pricing`)
	if err != nil {
		t.Fatal(err)
	}
	if s.Main.Path != "/pricing.html" {
		t.Fatalf("main = %q", s.Main.Path)
	}
}
