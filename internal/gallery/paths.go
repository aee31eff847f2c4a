// Package gallery turns a flat object listing into folder views.
//
// Everything here is pure: callers fetch one listing per request and pass it
// in, so results always reflect the object store at that moment.
package gallery

import (
	"strings"
	"unicode"

	"github.com/damacus/iron-gallery/internal/errs"
	"github.com/damacus/iron-gallery/internal/models"
)

const separator = "/"

// NormalizeFolder validates a root-relative folder path from a request.
// Leading and trailing slashes are trimmed; "" is the root level.
func NormalizeFolder(folder string) (string, error) {
	folder = strings.Trim(folder, separator)
	if folder == "" {
		return "", nil
	}
	if err := checkSegments(folder); err != nil {
		return "", err
	}
	return folder, nil
}

// ValidateDeletePath checks that fullPath names a folder strictly below root
// and returns it without a trailing slash.
func ValidateDeletePath(root, fullPath string) (string, error) {
	fullPath = strings.TrimSuffix(strings.TrimSpace(fullPath), separator)
	if fullPath == "" {
		return "", errs.Invalid("folder path is required")
	}
	rel, ok := strings.CutPrefix(fullPath, root+separator)
	if !ok || rel == "" {
		return "", errs.Invalid("folder %q is not inside %q", fullPath, root)
	}
	if err := checkSegments(rel); err != nil {
		return "", err
	}
	return fullPath, nil
}

// ValidateObjectKey checks that key names an object below root.
func ValidateObjectKey(root, key string) error {
	rel, ok := strings.CutPrefix(key, root+separator)
	if !ok || rel == "" || strings.HasSuffix(rel, separator) {
		return errs.Invalid("object %q is not inside %q", key, root)
	}
	return checkSegments(rel)
}

func checkSegments(path string) error {
	for _, seg := range strings.Split(path, separator) {
		switch seg {
		case "":
			return errs.Invalid("path %q contains an empty segment", path)
		case ".", "..":
			return errs.Invalid("path %q contains a relative segment", path)
		}
		if strings.ContainsFunc(seg, func(r rune) bool { return r == '\\' || unicode.IsControl(r) }) {
			return errs.Invalid("path %q contains an invalid character", path)
		}
	}
	return nil
}

// SearchPrefix is the key prefix of every object inside folder.
func SearchPrefix(root, folder string) string {
	if folder == "" {
		return root + separator
	}
	return root + separator + folder + separator
}

// JoinPath joins a root-relative parent and a child name.
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + separator + name
}

// BaseName returns the last segment of a slash-delimited path.
func BaseName(path string) string {
	path = strings.TrimSuffix(path, separator)
	if i := strings.LastIndex(path, separator); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Breadcrumbs lists each ancestor of folder, outermost first.
func Breadcrumbs(folder string) []models.Breadcrumb {
	crumbs := []models.Breadcrumb{}
	if folder == "" {
		return crumbs
	}
	path := ""
	for _, part := range strings.Split(folder, separator) {
		path = JoinPath(path, part)
		crumbs = append(crumbs, models.Breadcrumb{Name: part, Path: path})
	}
	return crumbs
}

func segments(rel string) []string {
	parts := strings.Split(rel, separator)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
