package fileutil

import (
	"net/url"
	"path"
)

// Join is a url.URL scheme-safe join method. This allows for joining of local
// files as well as URI's.
func Join(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}

	u, err := url.Parse(parts[0])
	if err != nil || u.Scheme == "" {
		return path.Join(parts...)
	}

	elems := append([]string{u.Path}, parts[1:]...)
	u.Path = path.Join(elems...)
	return u.String()
}

// Dir is a url.URL scheme-safe Dir method.
func Dir(p string) string {
	u, err := url.Parse(p)
	if err != nil || u.Scheme == "" {
		return path.Dir(p)
	}
	u.Path = path.Dir(u.Path)
	if u.Path == "/" || u.Path == "." {
		u.Path = ""
	}
	return u.String()
}
