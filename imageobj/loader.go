package imageobj

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/slide"
	"github.com/gogpu/slide/internal/lru"
	"github.com/h2non/filetype"
)

// DefaultImageCacheSize is the soft limit of decoded images kept by a Loader.
const DefaultImageCacheSize = 64

// ErrUnsupportedFormat is returned for data that is not a decodable image.
var ErrUnsupportedFormat = errors.New("imageobj: unsupported image format")

// supportedFormats maps sniffed extensions to decoder names.
var supportedFormats = map[string]string{
	"png":  "png",
	"jpg":  "jpeg",
	"gif":  "gif",
	"webp": "webp",
	"bmp":  "bmp",
	"tif":  "tiff",
}

// Source opens image references.
type Source interface {
	Open(ref string) (io.ReadCloser, error)
}

// FSSource resolves references as paths in a file system.
type FSSource struct {
	FS fs.FS
}

// Open implements Source.
func (s FSSource) Open(ref string) (io.ReadCloser, error) {
	return s.FS.Open(ref)
}

// Loader decodes images from a Source and caches them by reference.
// References are treated as immutable; call Forget when the data behind a
// reference changes. Loader is safe for concurrent use.
type Loader struct {
	src    Source
	images *lru.Cache[string, image.Image]
}

// NewLoader creates a loader reading from src.
func NewLoader(src Source) *Loader {
	return &Loader{
		src:    src,
		images: lru.New[string, image.Image](DefaultImageCacheSize),
	}
}

var _ slide.ImageProvider = (*Loader)(nil)

// Image returns the decoded image for ref, loading it on first use.
// Failed loads are not cached.
func (l *Loader) Image(ref string) (image.Image, error) {
	return l.images.GetOrCreate(ref, func() (image.Image, error) {
		return l.load(ref)
	})
}

func (l *Loader) load(ref string) (image.Image, error) {
	rc, err := l.src.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("imageobj: open %q: %w", ref, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("imageobj: read %q: %w", ref, err)
	}
	img, format, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("imageobj: decode %q: %w", ref, err)
	}
	b := img.Bounds()
	slide.Logger().Debug("imageobj: loaded", "ref", ref, "format", format, "width", b.Dx(), "height", b.Dy())
	return img, nil
}

// Decode sniffs the format of data from its magic bytes and decodes it.
// It returns the decoder name alongside the image.
func Decode(data []byte) (image.Image, string, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return nil, "", ErrUnsupportedFormat
	}
	format, ok := supportedFormats[kind.Extension]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}
	img, decoded, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	if decoded != format {
		slide.Logger().Warn("imageobj: format mismatch", "sniffed", format, "decoded", decoded)
	}
	return img, decoded, nil
}

// Forget drops the cached image for ref.
func (l *Loader) Forget(ref string) {
	l.images.Delete(ref)
}

// Stats returns statistics of the decoded image cache.
func (l *Loader) Stats() lru.Stats {
	return l.images.Stats()
}
