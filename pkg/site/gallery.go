package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/saracen/walker"
	"github.com/wedsite/wedsite/pkg/clog"
)

// AssetIndex knows which site relative asset paths exist on disk.
type AssetIndex struct {
	mu    sync.RWMutex
	paths map[string]bool
}

// IndexAssets walks root and records every regular file as a site path
// ("/gallery/venue/hall.jpg"). A missing root gives an empty index.
func IndexAssets(ctx context.Context, root string) (*AssetIndex, error) {
	idx := &AssetIndex{paths: make(map[string]bool)}

	if _, err := os.Stat(root); os.IsNotExist(err) {
		clog.UsingCtx("gallery").Warnf("Static directory %s does not exist, all gallery images will use the placeholder", root)
		return idx, nil
	}

	walkFn := func(pathname string, fi os.FileInfo) error {
		if !fi.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, pathname)
		if err != nil {
			return nil
		}

		idx.add("/" + filepath.ToSlash(rel))
		return nil
	}

	errCallback := walker.WithErrorCallback(func(pathname string, err error) error {
		clog.UsingCtx("gallery").Warnf("Skipping %s: %s", pathname, err)
		return nil
	})

	if err := walker.WalkWithContext(ctx, root, walkFn, errCallback); err != nil {
		return nil, err
	}

	return idx, nil
}

// NewAssetIndex builds an index from known paths.
func NewAssetIndex(paths ...string) *AssetIndex {
	idx := &AssetIndex{paths: make(map[string]bool)}
	for _, p := range paths {
		idx.add(p)
	}

	return idx
}

func (idx *AssetIndex) add(p string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.paths[p] = true
}

func (idx *AssetIndex) Has(p string) bool {
	if idx == nil {
		return false
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.paths[p]
}

func (idx *AssetIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.paths)
}

type GalleryItem struct {
	Src      string
	Original string
	Video    bool
	Missing  bool
}

// GalleryView is what the gallery page renders for one request.
type GalleryView struct {
	Categories []GalleryCategory
	Active     string
	Items      []GalleryItem
	Lightbox   *GalleryItem
}

type Gallery struct {
	categories []GalleryCategory
	assets     *AssetIndex
}

func NewGallery(assets *AssetIndex) *Gallery {
	return &Gallery{categories: galleryCategories, assets: assets}
}

// View filters the gallery by category ("" or unknown shows everything)
// and opens the lightbox on image when it is one of the shown items.
func (g *Gallery) View(category, image string) GalleryView {
	view := GalleryView{Categories: g.categories}

	for _, c := range g.categories {
		if c.Slug == category {
			view.Active = c.Slug
			break
		}
	}

	for _, c := range g.categories {
		if view.Active != "" && c.Slug != view.Active {
			continue
		}

		for _, f := range c.Files {
			view.Items = append(view.Items, g.item(f))
		}
	}

	for i := range view.Items {
		if image != "" && view.Items[i].Original == image {
			view.Lightbox = &view.Items[i]
			break
		}
	}

	return view
}

func (g *Gallery) item(file string) GalleryItem {
	item := GalleryItem{Src: file, Original: file, Video: IsVideo(file)}
	if !g.assets.Has(file) {
		item.Src = PlaceholderImage
		item.Missing = true
		item.Video = false
	}

	return item
}

func IsVideo(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".mp4", ".webm", ".mov":
		return true
	default:
		return false
	}
}
