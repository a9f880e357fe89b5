package page

// DocumentBuilderOption is a functional option for configuring a Document.
type DocumentBuilderOption func(d *document)

// WithViewport sets the initial viewport size in pixels.
//
// Parameters:
//   - width, height: the viewport size; values below 1 are raised to 1
//
// Returns:
//   - DocumentBuilderOption: option function to apply
func WithViewport(width, height float64) DocumentBuilderOption {
	return func(d *document) {
		d.viewportWidth = max(width, 1)
		d.viewportHeight = max(height, 1)
	}
}

// WithHeight sets the document height. The document is never shorter than the
// viewport or than its lowest section.
//
// Parameters:
//   - height: the document height in pixels
//
// Returns:
//   - DocumentBuilderOption: option function to apply
func WithHeight(height float64) DocumentBuilderOption {
	return func(d *document) {
		d.height = max(d.height, height)
	}
}

// WithSections adds sections to the document.
//
// Parameters:
//   - sections: the sections
//
// Returns:
//   - DocumentBuilderOption: option function to apply
func WithSections(sections ...Section) DocumentBuilderOption {
	return func(d *document) {
		for _, s := range sections {
			d.sections[s.ID] = s
			d.height = max(d.height, s.Bottom())
		}
	}
}
