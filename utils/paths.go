package utils

import "strings"

// CanonicalPath builds the full path of an asset from its containing
// folder's path and its name. The root folder carries an empty location, so
// its path is just its name (the owner's user id).
func CanonicalPath(location, name string) string {
	if location == "" {
		return name
	}
	return location + "/" + name
}

// SplitPath splits a canonical path into the location and name of the asset
// it addresses. A path with no separator is a root-level name with an empty
// location.
func SplitPath(path string) (location, name string) {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "", path
	}
	return path[:idx], path[idx+1:]
}

// IsSubtree reports whether path lies at or under root. Matching is
// anchored on whole segments, so "abc/docs2" is not under "abc/docs".
func IsSubtree(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+"/")
}

// RewritePrefix swaps the oldPrefix of a path for newPrefix. The second
// return value reports whether the path was in oldPrefix's subtree; when it
// is not, the path is returned unchanged.
func RewritePrefix(path, oldPrefix, newPrefix string) (string, bool) {
	if path == oldPrefix {
		return newPrefix, true
	}
	if strings.HasPrefix(path, oldPrefix+"/") {
		return newPrefix + path[len(oldPrefix):], true
	}
	return path, false
}

// PathOwner returns the first segment of a canonical path, which is the id
// of the owning user.
func PathOwner(path string) string {
	if idx := strings.Index(path, "/"); idx >= 0 {
		return path[:idx]
	}
	return path
}

// PathAncestors returns every folder path enclosing the given location,
// outermost first, the location itself included. An empty location has no
// ancestors.
func PathAncestors(location string) []string {
	if location == "" {
		return nil
	}
	segments := strings.Split(location, "/")
	ancestors := make([]string, 0, len(segments))
	for i := range segments {
		ancestors = append(ancestors, strings.Join(segments[:i+1], "/"))
	}
	return ancestors
}

// FileExt returns the extension after the last dot of a name, lowercased
// and trimmed. A name with no dot has an empty extension.
func FileExt(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(name[idx+1:]))
}
