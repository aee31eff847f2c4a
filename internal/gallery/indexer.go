package gallery

import (
	"strings"

	"github.com/damacus/iron-gallery/internal/models"
)

// Group is the set of objects attributed to one immediate subfolder.
type Group struct {
	Name    string
	Objects []models.ObjectRecord
}

// Index is one directory level of a listing.
type Index struct {
	DirectImages []models.ObjectRecord
	// Subfolders are ordered by first appearance in the listing.
	Subfolders []Group
}

// Group returns the subfolder group called name.
func (ix Index) Group(name string) (Group, bool) {
	for _, g := range ix.Subfolders {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// BuildIndex partitions objects into the images directly inside folder and
// the objects of each immediate subfolder. An object is attributed to a
// subfolder by its first segment after the folder prefix only.
func BuildIndex(objects []models.ObjectRecord, root, folder string) Index {
	prefix := SearchPrefix(root, folder)
	ix := Index{DirectImages: []models.ObjectRecord{}, Subfolders: []Group{}}
	pos := make(map[string]int)

	for _, obj := range objects {
		rel, ok := strings.CutPrefix(obj.Key, prefix)
		if !ok {
			continue
		}
		segs := segments(rel)
		switch {
		case len(segs) == 0:
			continue
		case len(segs) == 1:
			ix.DirectImages = append(ix.DirectImages, obj)
		default:
			name := segs[0]
			i, seen := pos[name]
			if !seen {
				i = len(ix.Subfolders)
				pos[name] = i
				ix.Subfolders = append(ix.Subfolders, Group{Name: name})
			}
			ix.Subfolders[i].Objects = append(ix.Subfolders[i].Objects, obj)
		}
	}
	return ix
}

// CountUnder reports how many objects sit anywhere below root.
func CountUnder(objects []models.ObjectRecord, root string) int {
	n := 0
	prefix := root + separator
	for _, obj := range objects {
		if strings.HasPrefix(obj.Key, prefix) {
			n++
		}
	}
	return n
}
