package gallery

import "github.com/damacus/iron-gallery/internal/models"

// Descriptions indexes metadata rows by bare folder name.
func Descriptions(rows []models.FolderMetadata) map[string]*string {
	out := make(map[string]*string, len(rows))
	for _, row := range rows {
		out[row.FolderName] = row.Description
	}
	return out
}

// Compose turns subfolder groups into folder nodes for one level. The cover
// image is the first object of each group in listing order.
func Compose(root, folder string, groups []Group, descriptions map[string]*string) []models.FolderNode {
	nodes := make([]models.FolderNode, 0, len(groups))
	for _, g := range groups {
		if len(g.Objects) == 0 {
			continue
		}
		path := JoinPath(folder, g.Name)
		nodes = append(nodes, models.FolderNode{
			Name:        g.Name,
			Path:        path,
			FullPath:    root + separator + path,
			CoverImage:  g.Objects[0].URL,
			Count:       len(g.Objects),
			Description: descriptions[g.Name],
		})
	}
	return nodes
}

// Overlay sets each node's description from descriptions by bare name.
func Overlay(nodes []models.FolderNode, descriptions map[string]*string) {
	for i := range nodes {
		nodes[i].Description = descriptions[nodes[i].Name]
	}
}
