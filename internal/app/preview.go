package app

import "github.com/nhle/mail-browser/internal/preview"

// PreviewHolder adapts the preview loader to the engine's Viewer
// contract: the engine asks for a file to be shown, the UI picks up
// the loaded document on the next dispatch return.
type PreviewHolder struct {
	doc *preview.Document
}

// View loads the file at path as a preview document.
func (p *PreviewHolder) View(path string) error {
	doc, err := preview.Load(path)
	if err != nil {
		return err
	}
	p.doc = doc
	return nil
}

// Take returns the pending document, clearing it.
func (p *PreviewHolder) Take() *preview.Document {
	doc := p.doc
	p.doc = nil
	return doc
}
