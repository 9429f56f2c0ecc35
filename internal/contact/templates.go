package contact

import (
	"embed"
	"io/fs"

	"github.com/dmitrymomot/portfolio/pkg/mailer"
	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
)

//go:embed templates
var templatesFS embed.FS

// Templates holds contact.md, its contact.txt sibling and layouts/base.html.
var Templates = mustSub(templatesFS, "templates")

// NewRenderer returns a renderer over Templates that passes every converted
// fragment through the email sanitizing policy.
func NewRenderer() *mailer.Renderer {
	return mailer.NewRendererWithConfig(Templates, mailer.RendererConfig{
		Policy: sanitizer.NewEmailPolicy(),
	})
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
