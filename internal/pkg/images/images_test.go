package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver("http://localhost:8080/uploads/")

	cases := []struct {
		name string
		ref  string
		want string
	}{
		{"empty ref", "", DefaultPlaceholder},
		{"whitespace ref", "   ", DefaultPlaceholder},
		{"absolute http", "http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"absolute https", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"plain filename", "abc.jpg", "http://localhost:8080/uploads/abc.jpg"},
		{"uploads prefix", "uploads/abc.jpg", "http://localhost:8080/uploads/abc.jpg"},
		{"slash uploads prefix", "/uploads/abc.jpg", "http://localhost:8080/uploads/abc.jpg"},
		{"windows separators", `uploads\photos\abc.jpg`, "http://localhost:8080/uploads/photos/abc.jpg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.Resolve(tc.ref))
		})
	}
}
