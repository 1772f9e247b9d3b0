package document

// fieldTemplate is the cached shape of one complex type: its direct children
// only. Deeper levels are resolved through their own class identifiers.
type fieldTemplate struct {
	classIdentifier string
	children        []*Field
}

// buildCache records one template per class identifier from the first
// complex field of that class that has materialized children.
func (d *Document) buildCache() {
	for _, f := range d.allFields {
		if f.IsTerminal() || f.ClassIdentifier == "" || !f.HasChildren() {
			continue
		}

		if _, ok := d.complexCache[f.ClassIdentifier]; ok {
			continue
		}

		tmpl := &fieldTemplate{classIdentifier: f.ClassIdentifier}
		for _, c := range f.Children() {
			tmpl.children = append(tmpl.children, c.Copy())
		}

		d.complexCache[f.ClassIdentifier] = tmpl
	}
}

// PopulateChildren materializes the children of a complex field from the
// complex-type cache. It returns true when the field is terminal or ends up
// with children, false when nothing could be found for it.
func (d *Document) PopulateChildren(f *Field) bool {
	if f.IsTerminal() || f.HasChildren() {
		return true
	}

	if f.doc != d {
		return false
	}

	tmpl, ok := d.complexCache[f.ClassIdentifier]
	if !ok || len(tmpl.children) == 0 {
		return false
	}

	for _, c := range tmpl.children {
		child := c.Copy()
		d.attach(f, child)
		d.populatePaths(child, f.Path+"/", f.Depth+1)
	}

	d.reindex()

	return true
}
