package recipe

import (
	_ "embed"
	"encoding/xml"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/suse-bci/bcigen/internal/image"
)

const cdataEnd = "]]>"

//go:embed kiwi.xml.tmpl
var kiwiTemplateText string

var kiwiTemplate = template.Must(
	template.New("kiwi").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{"xml": xmlEscape}).
		Option("missingkey=error").
		Parse(kiwiTemplateText),
)

// Values handed to the KIWI template in addition to the normalized image.
type kiwiView struct {
	*image.Normalized

	DerivedFrom    string       // Parent image as a repository path, empty without parent.
	AdditionalTags []string     // Every tag after the first.
	SubcommandElem *kiwiCommand // Default command, nil when unset.
	EntrypointElem *kiwiCommand // Entrypoint, nil when unset.
}

// Executable followed by its arguments.
type kiwiCommand struct {
	Execute   string
	Arguments []string
}

// Renders the KIWI image description of an image.
//
// The first tag becomes the container tag and the remaining tags are listed
// as additional tags. Packages are emitted per install phase, skipping
// empty phases. The config script, when present, is embedded verbatim in a
// CDATA section.
func RenderKiwi(n *image.Normalized) (string, error) {
	if len(n.Names) == 0 || len(n.Tags) == 0 {
		return "", fmt.Errorf("%w: image %q has no name or tag", ErrRender, n.PackageName)
	}
	if strings.Contains(n.ConfigShScript, cdataEnd) {
		return "", fmt.Errorf("%w: config script contains %q", ErrFormatIncapable, cdataEnd)
	}

	view := kiwiView{
		Normalized:     n,
		DerivedFrom:    derivedFrom(n),
		AdditionalTags: n.Tags[1:],
		SubcommandElem: command(n.Cmd),
		EntrypointElem: command(n.Entrypoint),
	}

	var b strings.Builder
	if err := kiwiTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return b.String(), nil
}

// Returns the parent image as a build service repository path, with the
// tag separator replaced by '#'.
func derivedFrom(n *image.Normalized) string {
	if !n.HasParent() {
		return ""
	}
	return "obsrepositories:/" + strings.Replace(n.FromImage, ":", "#", 1)
}

func command(args []string) *kiwiCommand {
	if len(args) == 0 {
		return nil
	}
	return &kiwiCommand{Execute: args[0], Arguments: args[1:]}
}

// Escapes text for use in XML character data and attribute values.
func xmlEscape(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}
