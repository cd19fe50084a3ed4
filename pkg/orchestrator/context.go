package orchestrator

import (
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-cardgen/pkg/platform"
	"github.com/goliatone/go-cardgen/pkg/record"
	"github.com/goliatone/go-cardgen/pkg/sanitize"
)

const maxFilenameSlug = 40

// RenderContext describes a finished render for capture and preview
// collaborators.
type RenderContext struct {
	Platform    string           `json:"platform"`
	Template    string           `json:"template"`
	DisplayName string           `json:"displayName"`
	Size        platform.Size    `json:"size"`
	Record      *record.Enriched `json:"record,omitempty"`
	Fallback    bool             `json:"fallback"`
	RenderedAt  time.Time        `json:"renderedAt"`
}

// Filename proposes a capture file name such as
// "instagram-post-hola-mundo-20261019-093000.png". ext defaults to png.
func (c RenderContext) Filename(ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = "png"
	}
	parts := []string{c.Platform, c.Template}
	if slug := c.titleSlug(); slug != "" {
		parts = append(parts, slug)
	}
	at := c.RenderedAt
	if at.IsZero() {
		at = time.Now()
	}
	parts = append(parts, at.Format("20060102-150405"))
	return strings.Join(parts, "-") + "." + ext
}

func (c RenderContext) titleSlug() string {
	if c.Record == nil {
		return ""
	}
	slug := sanitize.Slugify(html.UnescapeString(c.Record.Text(record.FieldPlainTitle)))
	if len(slug) <= maxFilenameSlug {
		return slug
	}
	slug = slug[:maxFilenameSlug]
	if idx := strings.LastIndex(slug, "-"); idx > 0 {
		slug = slug[:idx]
	}
	return strings.Trim(slug, "-")
}
