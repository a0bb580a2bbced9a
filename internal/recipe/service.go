package recipe

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/suse-bci/bcigen/internal/image"
)

// Names of the build service auxiliary files.
const (
	ServiceFileName     = "_service"
	ConstraintsFileName = "_constraints"
)

const (
	serviceModeBuildtime = "buildtime"
	serviceReplace       = "replace_using_package_version"
	serviceDockerLabels  = "docker_label_helper"
	serviceKiwiLabels    = "kiwi_label_helper"
	serviceKiwiMetainfo  = "kiwi_metainfo_helper"
)

type serviceList struct {
	XMLName  xml.Name  `xml:"services"`
	Services []service `xml:"service"`
}

type service struct {
	Name   string         `xml:"name,attr"`
	Mode   string         `xml:"mode,attr"`
	Params []serviceParam `xml:"param,omitempty"`
}

type serviceParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// Renders the _service file of an image whose recipes were written in the
// given formats.
//
// The file enables the label helper of every format and the metainfo helper
// that resolves the build time placeholders. Every placeholder replacement
// gets one service per rendered recipe file, so the substitution happens
// wherever the token appears.
func RenderService(n *image.Normalized, formats []Format) (string, error) {
	list := serviceList{}
	for _, f := range formats {
		switch f {
		case FormatDockerfile:
			list.Services = append(list.Services, service{Name: serviceDockerLabels, Mode: serviceModeBuildtime})
		case FormatKiwi:
			list.Services = append(list.Services, service{Name: serviceKiwiLabels, Mode: serviceModeBuildtime})
		}
	}
	list.Services = append(list.Services, service{Name: serviceKiwiMetainfo, Mode: serviceModeBuildtime})

	for _, r := range n.ReplacementsViaService {
		for _, f := range formats {
			params := []serviceParam{
				{Name: "file", Value: f.FileName(n)},
				{Name: "regex", Value: r.Token},
				{Name: "package", Value: r.PackageName},
			}
			if r.ParseRule != image.ParseFull {
				params = append(params, serviceParam{Name: "parse-version", Value: r.ParseRule.String()})
			}
			list.Services = append(list.Services, service{Name: serviceReplace, Mode: serviceModeBuildtime, Params: params})
		}
	}

	return marshalXML(list)
}

type constraints struct {
	XMLName xml.Name `xml:"constraints"`
	Disk    struct {
		Size struct {
			Unit  string `xml:"unit,attr"`
			Value int    `xml:",chardata"`
		} `xml:"size"`
	} `xml:"hardware>disk"`
}

// Renders a _constraints file requesting a build worker with at least the
// given disk size in GiB.
func DiskSizeConstraints(gib int) (string, error) {
	if gib <= 0 {
		return "", fmt.Errorf("%w: disk size %d", ErrRender, gib)
	}
	var c constraints
	c.Disk.Size.Unit = "G"
	c.Disk.Size.Value = gib
	return marshalXML(c)
}

func marshalXML(v any) (string, error) {
	var b strings.Builder
	enc := xml.NewEncoder(&b)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	b.WriteString("\n")
	return b.String(), nil
}
