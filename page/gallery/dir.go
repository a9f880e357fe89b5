package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-folio/common"
)

// ItemsFromDir builds gallery items from image files under dir. Each subdirectory is a
// category; files directly in dir get the category "misc". Captions come from the file
// name with dashes and underscores turned into spaces.
//
// Parameters:
//   - dir: the gallery root
//
// Returns:
//   - []Item: the items, ordered by category then file name
//   - error: error if dir cannot be read
func ItemsFromDir(dir string) ([]Item, error) {
	var items []Item
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isImage(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		category := "misc"
		if parent := filepath.Dir(rel); parent != "." {
			category = filepath.ToSlash(parent)
		}
		name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		items = append(items, Item{
			ID:       filepath.ToSlash(rel),
			Category: category,
			Caption:  strings.NewReplacer("-", " ", "_", " ").Replace(name),
			Image:    common.ImageSource{Name: name, Path: path},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gallery: failed to read %s: %w", dir, err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
