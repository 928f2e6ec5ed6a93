package render

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const (
	canvasClass = "qr-canvas"
	imageClass  = "qr-image"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// Markup describes the surface as an HTML fragment: an empty string when
// nothing is attached, an inline data image for a canvas, or an img element
// pointing at the remote source. The fragment is sanitised so payload text
// embedded in remote URLs cannot inject markup.
func Markup(surface Surface) (string, error) {
	artifact, ok := surface.Current()
	if !ok {
		return "", nil
	}

	var raw string
	switch typed := artifact.(type) {
	case *Canvas:
		export, err := ExportArtifact(typed, "")
		if err != nil {
			return "", err
		}
		src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(export.Data)
		raw = imgTag(canvasClass, src, DefaultImageAlt)
	case *ImageElement:
		raw = imgTag(imageClass, typed.Src(), typed.Alt())
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedArtifact, artifact.Kind())
	}

	return strings.TrimSpace(sanitizer().Sanitize(raw)), nil
}

func imgTag(class, src, alt string) string {
	return fmt.Sprintf(`<img class="%s" src="%s" alt="%s" width="300" height="300">`,
		class, html.EscapeString(src), html.EscapeString(alt))
}

func sanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("img")
		policy.AllowAttrs("class", "alt", "width", "height").OnElements("img")
		policy.AllowAttrs("src").OnElements("img")
		policy.AllowURLSchemes("https", "http")
		policy.AllowDataURIImages()
		markupPolicy = policy
	})
	return markupPolicy
}
