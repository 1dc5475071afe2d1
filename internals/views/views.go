// Package views embeds the HTML templates so the binary runs from any directory.
package views

import (
	"embed"
	"io/fs"
	"log"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templatesFS embed.FS

func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		log.Fatalf("[ERROR] templates: %v", err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("deref", func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	})
	return engine
}
