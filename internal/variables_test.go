package internal

import (
	"strings"
	"testing"
)

func TestVersionString(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		stage     string
		gitCommit string
		want      string
	}{
		{
			name: "local",
			want: "(local) [" + Platform() + "]",
		},
		{
			name:      "main branch",
			version:   "v1.2.3",
			stage:     "main",
			gitCommit: "a1b2c3d4",
			want:      "1.2.3 a1b2c3d4 [" + Platform() + "]",
		},
		{
			name:      "staging",
			version:   "1.2.3",
			stage:     "Staging",
			gitCommit: "a1b2c3d4",
			want:      "1.2.3+staging a1b2c3d4 [" + Platform() + "]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldVersion, oldStage, oldCommit := version, stage, gitCommit
			t.Cleanup(func() { version, stage, gitCommit = oldVersion, oldStage, oldCommit })

			version, stage, gitCommit = tt.version, tt.stage, tt.gitCommit
			if got := VersionString(); got != tt.want {
				t.Errorf("VersionString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlatform(t *testing.T) {
	if !strings.Contains(Platform(), "/") {
		t.Errorf("Platform() = %q, want os/arch", Platform())
	}
}
