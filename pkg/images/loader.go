// Package images provides image resources for layout: the natural pixel
// size is known before preparation, the decoded image is only produced when
// a page is painted.
package images

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"pagebox/pkg/errors"
)

// Resource is an image with a known natural size and a lazily created
// handle.
type Resource interface {
	// Name identifies the resource in logs.
	Name() string
	// Size is the natural size in pixels.
	Size() (width, height int)
	// Image decodes (once) and returns the image.
	Image() (image.Image, error)
}

// Loader opens image files and caches the resulting resources by path.
type Loader struct {
	mu    sync.Mutex
	cache map[string]*fileResource
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{cache: make(map[string]*fileResource)}
}

// Load reads the image header at path. Pixel data is decoded later, on the
// first call to Image.
func (l *Loader) Load(path string) (Resource, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if r, ok := l.cache[path]; ok {
		return r, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "opening image %q", path)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "reading image header %q", path)
	}

	r := &fileResource{
		path:   path,
		width:  cfg.Width,
		height: cfg.Height,
		decode: func() (image.Image, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			img, _, err := image.Decode(bytes.NewReader(data))
			return img, err
		},
	}
	l.cache[path] = r
	return r, nil
}

type fileResource struct {
	path          string
	width, height int
	decode        func() (image.Image, error)

	once sync.Once
	img  image.Image
	err  error
}

func (r *fileResource) Name() string { return r.path }

func (r *fileResource) Size() (int, int) { return r.width, r.height }

func (r *fileResource) Image() (image.Image, error) {
	r.once.Do(func() {
		r.img, r.err = r.decode()
		if r.err != nil {
			r.err = errors.Wrap(errors.ErrCodeRenderFailed, r.err, "decoding image %q", r.path)
		}
	})
	return r.img, r.err
}

// FromImage wraps an already decoded image.
func FromImage(name string, img image.Image) Resource {
	return &memResource{name: name, img: img}
}

type memResource struct {
	name string
	img  image.Image
}

func (r *memResource) Name() string { return r.name }

func (r *memResource) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *memResource) Image() (image.Image, error) { return r.img, nil }
