package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "go", Sanitize("  go  "))
	assert.Equal(t, "", Sanitize("   "))
	assert.Equal(t, "", Sanitize(""))
}

func TestCasingVariants(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"go", []string{"go", "GO", "Go"}},
		{"RUST", []string{"rust", "RUST", "Rust"}},
		{"typescript", []string{"typescript", "TYPESCRIPT", "Typescript"}},
		{"éclair", []string{"éclair", "ÉCLAIR", "Éclair"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, CasingVariants(tt.query))
		})
	}
}

func TestMatchesTopic(t *testing.T) {
	tests := []struct {
		name         string
		title        string
		description  string
		technologies []string
		query        string
		want         bool
	}{
		{
			name:  "title substring case-insensitive",
			title: "Rust vs Go", description: "trade-offs",
			query: "go", want: true,
		},
		{
			name:  "description substring",
			title: "Opinions", description: "mostly about Golang tooling",
			query: "golang", want: true,
		},
		{
			name:  "tag exact lowercase variant",
			title: "Web stuff", description: "frontend",
			technologies: []string{"react", "Go"},
			query:        "GO", want: true,
		},
		{
			name:  "tag exact capitalized variant",
			title: "Systems", description: "low level",
			technologies: []string{"Rust"},
			query:        "rust", want: true,
		},
		{
			name:  "mixed-case tag matches no variant",
			title: "Web", description: "types",
			technologies: []string{"TypeScript"},
			query:        "typescript", want: false,
		},
		{
			name:  "no match anywhere",
			title: "Rust vs Go", description: "trade-offs",
			technologies: []string{"rust", "go"},
			query:        "python", want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchesTopic(tt.title, tt.description, tt.technologies, tt.query)
			assert.Equal(t, tt.want, got)
		})
	}
}
