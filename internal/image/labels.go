package image

import (
	"bytes"
	"encoding/json"
	"fmt"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

const (
	LabelReference      = "org.opensuse.reference"
	LabelDistURL        = "org.openbuildservice.disturl"
	LabelSupportLevel   = "com.suse.supportlevel"
	LabelSupportedUntil = "com.suse.supportlevel.until"

	// Placeholders resolved by the build service.
	PlaceholderRelease   = "%RELEASE%"
	PlaceholderBuildTime = "%BUILDTIME%"
	PlaceholderSourceURL = "%SOURCEURL%"
	PlaceholderDistURL   = "%DISTURL%"

	// Release stage of every generated image.
	releaseStage = "released"
)

// A single image label.
type Label struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Extra labels in declaration order.
//
// Decodes from a list of key/value objects or from an object. Object keys
// keep the order in which they appear in the document. Scalar values are
// formatted like environment values.
type Labels []Label

func (l *Labels) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	var labels Labels
	switch tok {
	case nil:
		*l = nil
		return nil
	case json.Delim('['):
		var list []struct {
			Key   string `json:"key"`
			Value any    `json:"value"`
		}
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		for _, e := range list {
			labels = append(labels, Label{e.Key, formatValue(e.Value)})
		}
	case json.Delim('{'):
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			var value any
			if err := dec.Decode(&value); err != nil {
				return err
			}
			labels = append(labels, Label{tok.(string), formatValue(value)})
		}
	default:
		return fmt.Errorf("%w: extra labels must be an object or a list", ErrInvalidDefinition)
	}

	*l = labels
	return nil
}

// Assembles the label block of a normalized image.
//
// The standard OCI labels come first, in a fixed order, followed by the
// support labels (only when set and when the OS carries them), the OS
// vendor labels, and finally the extra labels in declaration order.
func assembleLabels(n *Normalized, extra Labels) []Label {
	ns := n.OS.LabelNamespace

	labels := []Label{
		{ocispec.AnnotationTitle, n.Title},
		{ocispec.AnnotationDescription, n.Description},
		{ocispec.AnnotationVersion, n.Version},
		{ocispec.AnnotationURL, n.OS.URL},
		{ocispec.AnnotationVendor, n.OS.Vendor},
		{ocispec.AnnotationCreated, PlaceholderBuildTime},
		{ocispec.AnnotationSource, PlaceholderSourceURL},
		{LabelReference, n.Reference()},
		{LabelDistURL, PlaceholderDistURL},
	}

	if n.OS.SupportLabels {
		if n.SupportLevel != SupportUnset {
			labels = append(labels, Label{LabelSupportLevel, string(n.SupportLevel)})
		}
		if !n.SupportedUntil.IsZero() {
			labels = append(labels, Label{LabelSupportedUntil, n.SupportedUntil.String()})
		}
	}

	if n.OS.EULA != "" {
		labels = append(labels, Label{ns + ".eula", n.OS.EULA})
	}
	labels = append(labels, Label{ns + ".lifecycle-url", n.OS.LifecycleURL})
	if n.OS.ImageType != "" {
		labels = append(labels, Label{ns + ".image-type", n.OS.ImageType})
	}
	labels = append(labels, Label{ns + ".release-stage", releaseStage})

	return append(labels, extra...)
}
