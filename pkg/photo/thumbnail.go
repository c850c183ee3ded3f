package photo

import (
	"bytes"

	"github.com/disintegration/imaging"
)

const (
	thumbnailWidth   = 400
	thumbnailHeight  = 400
	thumbnailQuality = 80
)

type (
	// Thumbnailer is a pure resize transform.
	Thumbnailer interface {
		Resize(data []byte, width, height int) ([]byte, error)
	}

	imagingThumbnailer struct{}
)

func NewThumbnailer() Thumbnailer {
	return &imagingThumbnailer{}
}

// Resize center-crops the image to fill width x height and re-encodes as JPEG.
func (t *imagingThumbnailer) Resize(data []byte, width, height int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(thumbnailQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
