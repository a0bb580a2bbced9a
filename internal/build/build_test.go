package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suse-bci/bcigen/internal/image"
	"github.com/suse-bci/bcigen/internal/osversion"
	"github.com/suse-bci/bcigen/internal/recipe"
)

func testDefinition() image.Definition {
	return image.Definition{
		Name:        "test",
		PrettyName:  "Test",
		PackageName: "test-image",
		Version:     "28",
		OsVersion:   osversion.SP4,
		PackageList: image.Packages("gcc", "emacs"),
	}
}

func kiwiDefinition() image.Definition {
	return image.Definition{
		Name:            "minimal",
		PackageName:     "minimal-image",
		Stack:           image.StackOS,
		OsVersion:       osversion.SP5,
		BuildRecipeType: image.BuildKiwi,
		PackageList: append(
			image.PackagesOfKind(image.PackageBootstrap, "sles-release"),
			image.PackagesOfKind(image.PackageDelete, "grep")...,
		),
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}

func artifactNames(pkg Package) []string {
	var names []string
	for _, a := range pkg.Artifacts {
		names = append(names, a.Name)
	}
	return names
}

func TestRun(t *testing.T) {
	out := t.TempDir()

	ruby := testDefinition()
	ruby.Name = "ruby"
	ruby.PackageName = "ruby-2.5-image"
	ruby.Version = "2.5"
	ruby.Env = map[string]any{"RUBY_VERSION": "%%rb_ver%%"}
	ruby.ReplacementsViaService = []image.Replacement{{Token: "%%rb_ver%%", PackageName: "ruby2.5"}}
	ruby.ExtraFiles = map[string]string{"_constraints": "<constraints/>\n"}

	result, err := Run(context.Background(), Options{
		Definitions: []image.Definition{testDefinition(), ruby},
		Output:      out,
		Jobs:        2,
	})
	require.NoError(t, err)
	require.Len(t, result.Packages, 2)

	test := result.Packages[0]
	assert.Equal(t, "15.4", test.OsVersion)
	assert.Equal(t, "test-image", test.PackageName)
	assert.Equal(t, filepath.Join(out, "15.4", "test-image"), test.Dir)
	assert.Equal(t, []string{"Dockerfile"}, artifactNames(test))
	assert.Nil(t, test.Archive)

	rb := result.Packages[1]
	assert.Equal(t, []string{"Dockerfile", "_constraints", "_service"}, artifactNames(rb))
	assert.Equal(t, "<constraints/>\n", string(readFile(t, filepath.Join(rb.Dir, "_constraints"))))
	assert.Contains(t, string(readFile(t, filepath.Join(rb.Dir, "_service"))), "<param name=\"regex\">%%rb_ver%%</param>")

	for _, pkg := range result.Packages {
		for _, a := range pkg.Artifacts {
			content := readFile(t, filepath.Join(pkg.Dir, a.Name))
			assert.Equal(t, digest.FromBytes(content), a.Digest, a.Name)
			assert.Equal(t, int64(len(content)), a.Size, a.Name)
		}
	}
}

func TestRunMatchesRenderer(t *testing.T) {
	out := t.TempDir()

	result, err := Run(context.Background(), Options{
		Definitions: []image.Definition{testDefinition()},
		Output:      out,
		AllFormats:  true,
	})
	require.NoError(t, err)
	require.Len(t, result.Packages, 1)

	n, err := image.Normalize(testDefinition())
	require.NoError(t, err)
	dockerfile, err := recipe.RenderDockerfile(n)
	require.NoError(t, err)
	kiwi, err := recipe.RenderKiwi(n)
	require.NoError(t, err)

	dir := result.Packages[0].Dir
	assert.Equal(t, dockerfile, string(readFile(t, filepath.Join(dir, "Dockerfile"))))
	assert.Equal(t, kiwi, string(readFile(t, filepath.Join(dir, "test-image.kiwi"))))
}

func TestRunSkipsIncapableSecondaryFormat(t *testing.T) {
	out := t.TempDir()

	result, err := Run(context.Background(), Options{
		Definitions: []image.Definition{kiwiDefinition()},
		Output:      out,
		AllFormats:  true,
	})
	require.NoError(t, err)
	require.Len(t, result.Packages, 1)

	pkg := result.Packages[0]
	assert.Equal(t, []string{"minimal-image.kiwi"}, artifactNames(pkg))
	assert.Equal(t, []string{"dockerfile"}, pkg.Skipped)
	assert.NoFileExists(t, filepath.Join(pkg.Dir, "Dockerfile"))
}

func TestRunIncapablePrimaryFormat(t *testing.T) {
	def := kiwiDefinition()
	def.BuildRecipeType = image.BuildDocker

	result, err := Run(context.Background(), Options{
		Definitions: []image.Definition{def},
		Output:      t.TempDir(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, recipe.ErrFormatIncapable))
	assert.Empty(t, result.Packages)
}

func TestRunIsolatesFailures(t *testing.T) {
	out := t.TempDir()

	bad := testDefinition()
	bad.PackageName = "bad-image"
	bad.OsVersion = "16.0"

	result, err := Run(context.Background(), Options{
		Definitions: []image.Definition{bad, testDefinition()},
		Output:      out,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBuild))
	assert.True(t, errors.Is(err, image.ErrInvalidDefinition))
	assert.True(t, errdefs.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "16.0/bad-image")

	require.Len(t, result.Packages, 1)
	assert.Equal(t, "test-image", result.Packages[0].PackageName)
	assert.FileExists(t, filepath.Join(out, "15.4", "test-image", "Dockerfile"))
	assert.NoDirExists(t, filepath.Join(out, "16.0"))
}

func TestRunRejectsDuplicates(t *testing.T) {
	first := testDefinition()
	second := testDefinition()
	second.Version = "29"

	result, err := Run(context.Background(), Options{
		Definitions: []image.Definition{first, second},
		Output:      t.TempDir(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicatePackage))
	assert.True(t, errdefs.IsAlreadyExists(err))

	require.Len(t, result.Packages, 1)
	dockerfile := readFile(t, filepath.Join(result.Packages[0].Dir, "Dockerfile"))
	assert.Contains(t, string(dockerfile), "#!BuildTag: bci/test:28\n")
}

func TestRunRejectsClashingExtraFile(t *testing.T) {
	def := testDefinition()
	def.ExtraFiles = map[string]string{"Dockerfile": "FROM scratch\n"}

	_, err := Run(context.Background(), Options{
		Definitions: []image.Definition{def},
		Output:      t.TempDir(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtraFile))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, Options{
		Definitions: []image.Definition{testDefinition()},
		Output:      t.TempDir(),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, result.Packages)
}

func TestParseExtraFile(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain", input: "_constraints"},
		{name: "dotted", input: "README.md"},
		{name: "empty", input: "", wantErr: true},
		{name: "dot", input: ".", wantErr: true},
		{name: "parent", input: "..", wantErr: true},
		{name: "nested", input: "etc/gemrc", wantErr: true},
		{name: "escaping", input: "../escape", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseExtraFile(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrExtraFile) {
					t.Errorf("error = %v, want %v", err, ErrExtraFile)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
