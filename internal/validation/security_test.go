package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "app/blog", false},
		{"dot prefix", "./build/components", false},
		{"absolute", "/srv/app", false},
		{"dots in name", "..app/x..y", false},
		{"empty", "", true},
		{"parent", "../app", true},
		{"nested parent", "app/../../x", true},
		{"semicolon", "app;rm", true},
		{"dollar", "app$HOME", true},
		{"backtick", "app`id`", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRelativePath(t *testing.T) {
	assert.NoError(t, ValidateRelativePath("tasks/*.rb"))
	assert.Error(t, ValidateRelativePath("/tasks/*.rb"))
	assert.Error(t, ValidateRelativePath("../tasks/*.rb"))
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"blog", "blog_admin", "v2", "my-blog", "blog.core"} {
		assert.NoError(t, ValidateName(name), name)
	}
	for _, name := range []string{"", ".", "..", "-blog", "my blog", "bl'og", "a/b", "b\"x"} {
		assert.Error(t, ValidateName(name), name)
	}
}

func TestValidateExtension(t *testing.T) {
	assert.NoError(t, ValidateExtension("md"))
	assert.NoError(t, ValidateExtension(".HTML"))
	assert.Error(t, ValidateExtension(""))
	assert.Error(t, ValidateExtension("."))
	assert.Error(t, ValidateExtension("tar.gz"))
	assert.Error(t, ValidateExtension("m*"))
}

