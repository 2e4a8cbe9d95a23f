package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPath(t *testing.T) {
	assert.Equal(t, "abc", CanonicalPath("", "abc"))
	assert.Equal(t, "abc/docs", CanonicalPath("abc", "docs"))
	assert.Equal(t, "abc/docs/a.png", CanonicalPath("abc/docs", "a.png"))
}

func TestSplitPath(t *testing.T) {
	location, name := SplitPath("abc/docs/a.png")
	assert.Equal(t, "abc/docs", location)
	assert.Equal(t, "a.png", name)

	location, name = SplitPath("abc")
	assert.Equal(t, "", location)
	assert.Equal(t, "abc", name)
}

func TestIsSubtree(t *testing.T) {
	t.Run("path equals root", func(t *testing.T) {
		assert.True(t, IsSubtree("abc/docs", "abc/docs"))
	})

	t.Run("descendant", func(t *testing.T) {
		assert.True(t, IsSubtree("abc/docs", "abc/docs/inner/deep"))
	})

	t.Run("sibling with shared prefix is not a descendant", func(t *testing.T) {
		assert.False(t, IsSubtree("abc/docs", "abc/docs2"))
		assert.False(t, IsSubtree("abc/docs", "abc/docs2/a.png"))
	})

	t.Run("unrelated path", func(t *testing.T) {
		assert.False(t, IsSubtree("abc/docs", "xyz/docs"))
	})
}

func TestRewritePrefix(t *testing.T) {
	t.Run("rewrites the root itself", func(t *testing.T) {
		path, ok := RewritePrefix("abc/docs", "abc/docs", "abc/photos")
		assert.True(t, ok)
		assert.Equal(t, "abc/photos", path)
	})

	t.Run("rewrites descendants", func(t *testing.T) {
		path, ok := RewritePrefix("abc/docs/inner/a.png", "abc/docs", "abc/photos")
		assert.True(t, ok)
		assert.Equal(t, "abc/photos/inner/a.png", path)
	})

	t.Run("leaves segment-sharing siblings alone", func(t *testing.T) {
		path, ok := RewritePrefix("abc/docs2/a.png", "abc/docs", "abc/photos")
		assert.False(t, ok)
		assert.Equal(t, "abc/docs2/a.png", path)
	})
}

func TestPathOwner(t *testing.T) {
	assert.Equal(t, "abc", PathOwner("abc/docs/a.png"))
	assert.Equal(t, "abc", PathOwner("abc"))
}

func TestPathAncestors(t *testing.T) {
	assert.Nil(t, PathAncestors(""))
	assert.Equal(t, []string{"abc"}, PathAncestors("abc"))
	assert.Equal(t, []string{"abc", "abc/docs", "abc/docs/inner"}, PathAncestors("abc/docs/inner"))
}

func TestFileExt(t *testing.T) {
	assert.Equal(t, "png", FileExt("a.png"))
	assert.Equal(t, "png", FileExt("a.PNG"))
	assert.Equal(t, "gz", FileExt("archive.tar.gz"))
	assert.Equal(t, "", FileExt("Makefile"))
	assert.Equal(t, "", FileExt("trailing."))
}
