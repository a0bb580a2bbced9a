package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/suse-bci/bcigen/internal/image"
)

const (
	labelsComment = "# Define labels according to https://en.opensuse.org/Building_derived_containers"
	installSuffix = "; zypper -n clean; rm -rf /var/log/*"
)

// Renders the Dockerfile of an image.
//
// Statements follow a fixed order: build service directives, FROM,
// MAINTAINER, the prefixed label block, package installation, ENV,
// ENTRYPOINT, CMD, EXPOSE, VOLUME and finally the custom end fragment,
// verbatim. Optional statements are left out when their field is empty.
// Images with packages to delete are rejected with [ErrFormatIncapable].
func RenderDockerfile(n *image.Normalized) (string, error) {
	if len(n.Packages.Delete) > 0 {
		return "", fmt.Errorf("%w: Dockerfile cannot remove packages %s", ErrFormatIncapable, strings.Join(n.Packages.Delete, ", "))
	}

	var b strings.Builder
	writeDirectives(&b, n)
	writeFrom(&b, n)
	writeLabels(&b, n)
	writeInstall(&b, n)
	writeEnv(&b, n)
	if err := writeExec(&b, "ENTRYPOINT", n.Entrypoint); err != nil {
		return "", err
	}
	if err := writeExec(&b, "CMD", n.Cmd); err != nil {
		return "", err
	}
	writeExpose(&b, n)
	writeVolumes(&b, n)
	b.WriteString(n.CustomEnd)

	return b.String(), nil
}

// Writes the build service directives that precede the first statement.
func writeDirectives(b *strings.Builder, n *image.Normalized) {
	if len(n.ExclusiveArch) > 0 {
		archs := make([]string, 0, len(n.ExclusiveArch))
		for _, a := range n.ExclusiveArch {
			archs = append(archs, a.String())
		}
		fmt.Fprintf(b, "#!ExclusiveArch: %s\n", strings.Join(archs, " "))
	}
	fmt.Fprintf(b, "# SPDX-License-Identifier: %s\n", n.License)
	for _, tag := range n.BuildTags {
		fmt.Fprintf(b, "#!BuildTag: %s\n", tag)
	}
	if n.BuildVersion != "" {
		fmt.Fprintf(b, "#!BuildVersion: %s\n", n.BuildVersion)
	}
}

func writeFrom(b *strings.Builder, n *image.Normalized) {
	fmt.Fprintf(b, "FROM %s\n\n", n.FromImage)
	fmt.Fprintf(b, "MAINTAINER %s\n\n", n.Maintainer)
}

// Writes the label block wrapped in the prefix markers understood by the
// build service label helper.
func writeLabels(b *strings.Builder, n *image.Normalized) {
	b.WriteString(labelsComment + "\n")
	fmt.Fprintf(b, "# labelprefix=%s\n", n.LabelPrefix)
	for _, l := range n.Labels {
		fmt.Fprintf(b, "LABEL %s=%s\n", l.Key, quote(l.Value))
	}
	b.WriteString("# endlabelprefix\n\n")
}

// Writes a single statement installing normal and bootstrap packages.
func writeInstall(b *strings.Builder, n *image.Normalized) {
	if len(n.Packages.Install) == 0 {
		return
	}
	fmt.Fprintf(b, "RUN zypper -n in --no-recommends %s%s\n", strings.Join(n.Packages.Install, " "), installSuffix)
}

func writeEnv(b *strings.Builder, n *image.Normalized) {
	for _, env := range n.EnvVars {
		fmt.Fprintf(b, "ENV %s=%s\n", env.Name, quote(env.Value))
	}
}

// Writes an exec form instruction (a JSON array of arguments).
func writeExec(b *strings.Builder, instruction string, args []string) error {
	if len(args) == 0 {
		return nil
	}
	arr, err := jsonArray(args)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, instruction, err)
	}
	fmt.Fprintf(b, "%s %s\n", instruction, arr)
	return nil
}

func writeExpose(b *strings.Builder, n *image.Normalized) {
	if len(n.ExposesTCP) == 0 {
		return
	}
	ports := make([]string, 0, len(n.ExposesTCP))
	for _, p := range n.ExposesTCP {
		ports = append(ports, strconv.Itoa(int(p)))
	}
	fmt.Fprintf(b, "EXPOSE %s\n", strings.Join(ports, " "))
}

// Writes the VOLUME instruction. Paths containing whitespace force the JSON
// form.
func writeVolumes(b *strings.Builder, n *image.Normalized) {
	if len(n.Volumes) == 0 {
		return
	}
	for _, v := range n.Volumes {
		if strings.ContainsAny(v, " \t") {
			arr, err := jsonArray(n.Volumes)
			if err == nil {
				fmt.Fprintf(b, "VOLUME %s\n", arr)
				return
			}
		}
	}
	fmt.Fprintf(b, "VOLUME %s\n", strings.Join(n.Volumes, " "))
}

// Quotes a value for LABEL and ENV instructions.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// Encodes arguments as a JSON array without HTML escaping.
func jsonArray(args []string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(args); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
