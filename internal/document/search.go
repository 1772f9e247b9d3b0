package document

import (
	"strings"

	"golang.org/x/text/cases"
)

// SearchResult summarizes one Search call.
type SearchResult struct {
	Matches  int
	Exceeded bool
}

// Search updates field and document visibility for a name filter. With an
// empty filter every document and field becomes visible again. Otherwise a
// field matches when its name contains the filter case-insensitively; a
// match makes its document, its ancestors and its descendants visible and
// expands its ancestors. Marking stops once limit matches were found.
func Search(docs []*Document, filter string, limit int) SearchResult {
	if filter == "" {
		for _, d := range docs {
			d.Visible = true
			for _, f := range d.allFields {
				f.Visible = true
			}
		}

		return SearchResult{}
	}

	fold := cases.Fold()
	needle := fold.String(filter)

	for _, d := range docs {
		d.Visible = false
		for _, f := range d.allFields {
			f.Visible = false
		}
	}

	var res SearchResult

	for _, d := range docs {
		for _, f := range d.allFields {
			if !strings.Contains(fold.String(f.Name), needle) {
				continue
			}

			if limit > 0 && res.Matches >= limit {
				res.Exceeded = true

				return res
			}

			res.Matches++
			d.Visible = true
			f.Visible = true

			for p := f.Parent(); p != nil; p = p.Parent() {
				p.Visible = true
				p.Collapsed = false
			}

			showSubtree(f)
		}
	}

	return res
}

func showSubtree(f *Field) {
	for _, c := range f.Children() {
		c.Visible = true
		showSubtree(c)
	}
}
