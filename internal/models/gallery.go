// Package models contains data structures shared by the gallery layers
package models

import "time"

// ObjectRecord is one stored image under the gallery root.
type ObjectRecord struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// FolderNode is a folder inferred from object keys. It is never persisted.
type FolderNode struct {
	Name string `json:"name"`
	// Path is relative to the gallery root and is what ?folder= expects.
	Path string `json:"path"`
	// FullPath includes the root segment and is what folder deletion expects.
	FullPath        string     `json:"fullPath"`
	CoverImage      string     `json:"coverImage"`
	Count           int        `json:"count"`
	Description     *string    `json:"description"`
	LatestImageDate *time.Time `json:"latestImageDate,omitempty"`
}

// FolderMetadata is the admin-authored annotation for a folder name.
type FolderMetadata struct {
	FolderName  string    `json:"folderName"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ImageSummary is the trimmed image shape returned by folder listings.
type ImageSummary struct {
	ID            string    `json:"id"`
	Key           string    `json:"key"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	Size          int64     `json:"size"`
	FormattedSize string    `json:"formattedSize"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Breadcrumb for navigation
type Breadcrumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// FolderListing is one directory level of the gallery.
type FolderListing struct {
	CurrentPath  string         `json:"currentPath"`
	Breadcrumbs  []Breadcrumb   `json:"breadcrumbs"`
	Subfolders   []FolderNode   `json:"subfolders"`
	Images       []ImageSummary `json:"images"`
	TotalFiles   int            `json:"totalFiles"`
	GalleryFiles int            `json:"galleryFiles"`
	Page         int            `json:"page"`
	Limit        int            `json:"limit"`
	HasMore      bool           `json:"hasMore"`
}

// DeleteResult reports a folder deletion that removed the objects.
// Warnings lists side failures that did not fail the deletion.
type DeleteResult struct {
	Success  bool     `json:"success"`
	Removed  int      `json:"removed"`
	Warnings []string `json:"warnings,omitempty"`
}

// StorageStatus summarises the object-store backend for operators.
type StorageStatus struct {
	Mode            string `json:"mode"`
	Bucket          string `json:"bucket"`
	Objects         uint64 `json:"objects"`
	Size            uint64 `json:"size"`
	FormattedSize   string `json:"formattedSize"`
	MetadataHealthy bool   `json:"metadataHealthy"`
}
