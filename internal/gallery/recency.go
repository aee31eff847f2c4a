package gallery

import (
	"sort"
	"strings"

	"github.com/damacus/iron-gallery/internal/models"
)

// RankRecent groups objects by their top-level folder and returns the k
// folders with the newest objects, newest first. Objects sitting directly
// under root are not in any folder and are skipped. Equal timestamps keep
// grouping order.
func RankRecent(objects []models.ObjectRecord, root string, k int) []models.FolderNode {
	if k <= 0 {
		return []models.FolderNode{}
	}

	prefix := root + separator
	var nodes []models.FolderNode
	pos := make(map[string]int)

	for _, obj := range objects {
		rel, ok := strings.CutPrefix(obj.Key, prefix)
		if !ok {
			continue
		}
		segs := segments(rel)
		if len(segs) < 2 {
			continue
		}
		name := segs[0]
		i, seen := pos[name]
		if !seen {
			created := obj.CreatedAt
			pos[name] = len(nodes)
			nodes = append(nodes, models.FolderNode{
				Name:            name,
				Path:            name,
				FullPath:        prefix + name,
				CoverImage:      obj.URL,
				Count:           1,
				LatestImageDate: &created,
			})
			continue
		}
		n := &nodes[i]
		n.Count++
		if obj.CreatedAt.After(*n.LatestImageDate) {
			created := obj.CreatedAt
			n.LatestImageDate = &created
			n.CoverImage = obj.URL
		}
	}

	sort.SliceStable(nodes, func(a, b int) bool {
		return nodes[a].LatestImageDate.After(*nodes[b].LatestImageDate)
	})

	if len(nodes) > k {
		nodes = nodes[:k]
	}
	if nodes == nil {
		nodes = []models.FolderNode{}
	}
	return nodes
}
