package render

import "github.com/sitesmith/studio/schema"

// collectAssets gathers every image URL and font family the document
// references, recursing into groups, so the preload pass can resolve them
// as a unit before drawing starts.
func collectAssets(doc schema.Document) (urls []string, families []string) {
	seenURL := make(map[string]bool)
	seenFamily := make(map[string]bool)

	addURL := func(u string) {
		if u != "" && !seenURL[u] {
			seenURL[u] = true
			urls = append(urls, u)
		}
	}
	addFamily := func(f string) {
		if f != "" && !seenFamily[f] {
			seenFamily[f] = true
			families = append(families, f)
		}
	}

	for fi := range doc.Frames {
		frame := &doc.Frames[fi]
		if frame.Background.Type == schema.BackgroundImage {
			addURL(frame.Background.Src)
		}
		for li := range frame.Layers {
			frame.Layers[li].Walk(func(l *schema.Layer) bool {
				switch l.Type {
				case schema.LayerImage:
					addURL(l.Src)
				case schema.LayerText:
					addFamily(l.FontFamily)
				case schema.LayerComponent:
					addFamily(propString(l.Props, "fontFamily", schema.DefaultFontFamily))
				}
				return true
			})
		}
	}
	return urls, families
}
