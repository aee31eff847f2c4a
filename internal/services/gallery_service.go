package services

import (
	"context"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/damacus/iron-gallery/internal/errs"
	"github.com/damacus/iron-gallery/internal/gallery"
	"github.com/damacus/iron-gallery/internal/logger"
	"github.com/damacus/iron-gallery/internal/models"
	"github.com/damacus/iron-gallery/internal/storage"
)

// GalleryOptions tune listing and recency behaviour.
type GalleryOptions struct {
	RootPrefix    string
	RecentDefault int
	RecentMax     int
}

// ListQuery selects one folder level and an optional page of its images.
// A zero Limit returns every image.
type ListQuery struct {
	Folder string
	Page   int
	Limit  int
}

// GalleryService synthesises folder views from a fresh object listing on
// every call and joins them with stored descriptions.
type GalleryService struct {
	objects  ObjectGateway
	metadata storage.FolderMetadataStore
	opts     GalleryOptions
}

func NewGalleryService(objects ObjectGateway, metadata storage.FolderMetadataStore, opts GalleryOptions) *GalleryService {
	if opts.RecentDefault <= 0 {
		opts.RecentDefault = 6
	}
	if opts.RecentMax < opts.RecentDefault {
		opts.RecentMax = opts.RecentDefault
	}
	return &GalleryService{objects: objects, metadata: metadata, opts: opts}
}

func (s *GalleryService) Root() string { return s.opts.RootPrefix }

// ListFolder returns one level of the hierarchy. Listing failures are
// returned as errors; description failures only drop the descriptions.
func (s *GalleryService) ListFolder(ctx context.Context, q ListQuery) (models.FolderListing, error) {
	folder, err := gallery.NormalizeFolder(q.Folder)
	if err != nil {
		return models.FolderListing{}, err
	}
	if q.Page < 0 || q.Limit < 0 {
		return models.FolderListing{}, errs.Invalid("page and limit must not be negative")
	}

	objects, err := s.objects.List(ctx, s.opts.RootPrefix+"/")
	if err != nil {
		return models.FolderListing{}, err
	}

	ix := gallery.BuildIndex(objects, s.opts.RootPrefix, folder)

	var descriptions map[string]*string
	if len(ix.Subfolders) > 0 {
		descriptions = s.descriptions(ctx)
	}
	subfolders := gallery.Compose(s.opts.RootPrefix, folder, ix.Subfolders, descriptions)
	sort.SliceStable(subfolders, func(i, j int) bool {
		return subfolders[i].Name < subfolders[j].Name
	})

	direct := ix.DirectImages
	sort.SliceStable(direct, func(i, j int) bool { return direct[i].Key < direct[j].Key })

	page := max(q.Page, 1)
	pageItems, hasMore := paginate(direct, page, q.Limit)

	images := make([]models.ImageSummary, 0, len(pageItems))
	for _, obj := range pageItems {
		images = append(images, summarize(obj))
	}

	return models.FolderListing{
		CurrentPath:  folder,
		Breadcrumbs:  gallery.Breadcrumbs(folder),
		Subfolders:   subfolders,
		Images:       images,
		TotalFiles:   len(direct),
		GalleryFiles: gallery.CountUnder(objects, s.opts.RootPrefix),
		Page:         page,
		Limit:        q.Limit,
		HasMore:      hasMore,
	}, nil
}

func paginate(items []models.ObjectRecord, page, limit int) ([]models.ObjectRecord, bool) {
	if limit <= 0 {
		return items, false
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return nil, false
	}
	end := min(start+limit, len(items))
	return items[start:end], end < len(items)
}

func summarize(obj models.ObjectRecord) models.ImageSummary {
	size := obj.Size
	if size < 0 {
		size = 0
	}
	return models.ImageSummary{
		ID:            obj.ID,
		Key:           obj.Key,
		Name:          obj.Name,
		URL:           obj.URL,
		Size:          obj.Size,
		FormattedSize: humanize.Bytes(uint64(size)),
		CreatedAt:     obj.CreatedAt,
	}
}

// Recent returns the top-level folders with the newest images. A limit of
// zero selects the default; larger limits are clamped.
func (s *GalleryService) Recent(ctx context.Context, limit int) ([]models.FolderNode, error) {
	if limit < 0 {
		return nil, errs.Invalid("limit must not be negative")
	}
	if limit == 0 {
		limit = s.opts.RecentDefault
	}
	limit = min(limit, s.opts.RecentMax)

	objects, err := s.objects.List(ctx, s.opts.RootPrefix+"/")
	if err != nil {
		return nil, err
	}

	nodes := gallery.RankRecent(objects, s.opts.RootPrefix, limit)
	if len(nodes) > 0 {
		gallery.Overlay(nodes, s.descriptions(ctx))
	}
	return nodes, nil
}

// descriptions loads every stored description. Failures are logged and
// yield an empty map.
func (s *GalleryService) descriptions(ctx context.Context) map[string]*string {
	rows, err := s.metadata.List(ctx)
	if err != nil {
		logger.FromContext(ctx).WarnWith("folder metadata unavailable", err, nil)
		return map[string]*string{}
	}
	return gallery.Descriptions(rows)
}

// SaveFolderMetadata creates or replaces the description for a bare folder
// name. An empty description is stored as null.
func (s *GalleryService) SaveFolderMetadata(ctx context.Context, name string, description *string) (models.FolderMetadata, error) {
	name, err := folderName(name)
	if err != nil {
		return models.FolderMetadata{}, err
	}
	if description != nil && strings.TrimSpace(*description) == "" {
		description = nil
	}
	return s.metadata.Upsert(ctx, name, description)
}

func (s *GalleryService) ListFolderMetadata(ctx context.Context) ([]models.FolderMetadata, error) {
	rows, err := s.metadata.List(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.FolderMetadata{}
	}
	return rows, nil
}

func (s *GalleryService) DeleteFolderMetadata(ctx context.Context, name string) error {
	name, err := folderName(name)
	if err != nil {
		return err
	}
	return s.metadata.DeleteByName(ctx, name)
}

// folderName accepts a bare folder name, the join key used for descriptions.
func folderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.Invalid("folder name is required")
	}
	if strings.Contains(name, "/") || name == "." || name == ".." {
		return "", errs.Invalid("folder name %q must be a single path segment", name)
	}
	return name, nil
}
