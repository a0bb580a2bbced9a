package image

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suse-bci/bcigen/internal/osversion"
)

const definitionsYAML = `
- name: test
  prettyName: Test
  packageName: test-image
  version: "28.2"
  additionalVersions: ["28"]
  additionalNames: [emacs]
  osVersion: Tumbleweed
  isLatest: true
  fromImage: suse/base:18
  license: BSD
  maintainer: invalid@suse.com
  exclusiveArch: [x86_64, linux/s390x]
  packages:
    - gcc
    - emacs
    - name: rpm
      kind: bootstrap
  env:
    EMACS_VERSION: 28
    GPP_path: /usr/bin/g++
  extraLabels:
    emacs_version: "28"
  exposesTcp: [22, 1111]
  volumes: [/bin/, /usr/bin/]
  entrypoint: [/usr/bin/emacs]
  cmd: [/usr/bin/gcc]
  supportedUntil: "2024-02-01"
  replacementsViaService:
    - token: "%%emacs_ver%%"
      packageName: emacs
      parseVersion: minor
- name: python
  packageName: python-3.11-image
  version: "3.11"
  osVersion: 15.5
  buildRecipeType: kiwi
`

func TestLoadDefinitions(t *testing.T) {
	defs, err := LoadDefinitions([]byte(definitionsYAML))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	d := defs[0]
	assert.Equal(t, "test", d.Name)
	assert.Equal(t, osversion.Tumbleweed, d.OsVersion)
	assert.Equal(t, []osversion.Arch{osversion.ArchX86_64, osversion.ArchS390x}, d.ExclusiveArch)
	assert.Equal(t, []Package{
		{Name: "gcc"},
		{Name: "emacs"},
		{Name: "rpm", Kind: PackageBootstrap},
	}, d.PackageList)
	assert.Equal(t, []uint16{22, 1111}, d.ExposesTCP)
	assert.Equal(t, "2024-02-01", d.SupportedUntil.String())
	assert.Equal(t, ParseMinor, d.ReplacementsViaService[0].ParseRule)

	n, err := Normalize(d)
	require.NoError(t, err)
	assert.Equal(t, []EnvVar{{"EMACS_VERSION", "28"}, {"GPP_path", "/usr/bin/g++"}}, n.EnvVars)

	assert.Equal(t, osversion.SP5, defs[1].OsVersion)
	assert.Equal(t, BuildKiwi, defs[1].BuildRecipeType)
}

func TestExtraLabelsKeepDeclarationOrder(t *testing.T) {
	want := Labels{{"emacs_version", "28"}, {"GCC_version", "15"}, {"abi", "x86-64-v2"}}

	t.Run("yaml list", func(t *testing.T) {
		doc := `
- name: x
  packageName: x
  extraLabels:
    - key: emacs_version
      value: 28
    - key: GCC_version
      value: "15"
    - key: abi
      value: x86-64-v2
`
		defs, err := LoadDefinitions([]byte(doc))
		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.Equal(t, want, defs[0].ExtraLabels)
	})

	t.Run("json object", func(t *testing.T) {
		doc := `{"extraLabels": {"emacs_version": 28, "GCC_version": "15", "abi": "x86-64-v2"}}`
		var def Definition
		require.NoError(t, json.Unmarshal([]byte(doc), &def))
		assert.Equal(t, want, def.ExtraLabels)
	})

	t.Run("yaml mapping", func(t *testing.T) {
		doc := "- name: x\n  packageName: x\n  extraLabels:\n    emacs_version: 28\n"
		defs, err := LoadDefinitions([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, Labels{{"emacs_version", "28"}}, defs[0].ExtraLabels)
	})

	t.Run("scalar", func(t *testing.T) {
		_, err := LoadDefinitions([]byte("- name: x\n  packageName: x\n  extraLabels: usage\n"))
		assert.ErrorIs(t, err, ErrInvalidDefinition)
	})
}

func TestLoadDefinitionsRejectsUnknownFields(t *testing.T) {
	tests := map[string]string{
		"top level": "- name: x\n  packageName: x\n  colour: red\n",
		"package":   "- name: x\n  packageName: x\n  packages:\n    - name: a\n      arch: x86_64\n",
		"kind":      "- name: x\n  packageName: x\n  packages:\n    - name: a\n      kind: remove\n",
		"arch":      "- name: x\n  packageName: x\n  exclusiveArch: [mips]\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadDefinitions([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestPackageKindText(t *testing.T) {
	for _, k := range []PackageKind{PackageNormal, PackageBootstrap, PackageDelete} {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var got PackageKind
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, k, got)
	}

	_, err := PackageKind(7).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}
