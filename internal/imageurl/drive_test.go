package imageurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectDriveURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"file path share link", "https://drive.google.com/file/d/abc123/view?usp=sharing", "https://lh3.googleusercontent.com/d/abc123=w1000"},
		{"open link with id query", "https://drive.google.com/open?id=XYZ", "https://lh3.googleusercontent.com/d/XYZ=w1000"},
		{"id after another parameter", "https://drive.google.com/uc?export=view&id=q1", "https://lh3.googleusercontent.com/d/q1=w1000"},
		{"case insensitive path", "https://drive.google.com/FILE/D/Up/view", "https://lh3.googleusercontent.com/d/Up=w1000"},
		{"already direct", "https://lh3.googleusercontent.com/d/abc=w1000", "https://lh3.googleusercontent.com/d/abc=w1000"},
		{"unrelated url", "https://example.com/a.png", "https://example.com/a.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DirectDriveURL(tt.in))
		})
	}
}
