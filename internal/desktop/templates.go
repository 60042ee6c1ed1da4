package desktop

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/nfnt/resize"
	"github.com/vcaesar/imgo"
)

// ErrUnknownTemplate is returned when an id was never registered.
var ErrUnknownTemplate = errors.New("template not registered")

// Templates maps image ids to the decoded images matched against the screen.
// Lists group several images under one name for "any of these" lookups.
type Templates struct {
	mu     sync.RWMutex
	scale  float64
	images map[string]image.Image
	lists  map[string][]string
	areas  map[string]Area
}

// NewTemplates creates an empty registry. Images are resized by scale when it
// differs from 1, to follow the display scaling factor.
func NewTemplates(scale float64) *Templates {
	if scale <= 0 {
		scale = 1
	}
	return &Templates{
		scale:  scale,
		images: make(map[string]image.Image),
		lists:  make(map[string][]string),
		areas:  make(map[string]Area),
	}
}

// Add reads the image at path and registers it as id.
func (t *Templates) Add(id, path string) error {
	img, err := imgo.Read(path)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", path, err)
	}
	t.AddImage(id, img)
	return nil
}

// AddImage registers an already decoded image.
func (t *Templates) AddImage(id string, img image.Image) {
	if t.scale != 1 {
		w := uint(float64(img.Bounds().Dx()) * t.scale)
		img = resize.Resize(w, 0, img, resize.Bilinear)
	}
	rgba := ToRGBA(img)
	t.mu.Lock()
	t.images[id] = rgba
	t.mu.Unlock()
}

// AddList registers every PNG in dir under name. Member ids are "name/<file>"
// and are returned sorted.
func (t *Templates) AddList(name, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading template list %s: %w", name, err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		id := name + "/" + strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if err := t.Add(id, filepath.Join(dir, e.Name())); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("template list %s: no images in %s", name, dir)
	}
	sort.Strings(ids)

	t.mu.Lock()
	t.lists[name] = ids
	t.mu.Unlock()
	return ids, nil
}

// SetList registers ids, already added, as the list name.
func (t *Templates) SetList(name string, ids ...string) {
	t.mu.Lock()
	t.lists[name] = append([]string(nil), ids...)
	t.mu.Unlock()
}

// Get returns the image registered as id.
func (t *Templates) Get(id string) (image.Image, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	img, ok := t.images[id]
	return img, ok
}

// List returns the member ids of a list, or nil.
func (t *Templates) List(name string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.lists[name]...)
}

// SetArea restricts the search for ids to area of the frame.
func (t *Templates) SetArea(area Area, ids ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		t.areas[id] = area
	}
}

// SearchRect is the part of a frame with bounds where id is searched.
func (t *Templates) SearchRect(id string, bounds image.Rectangle) image.Rectangle {
	t.mu.RLock()
	area, ok := t.areas[id]
	t.mu.RUnlock()
	if !ok {
		return bounds
	}
	return area.Rect(bounds)
}

// Len is the number of registered images.
func (t *Templates) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.images)
}
