package storage

import (
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"groupme/internal/core"
)

// DetectImage sniffs the content type of an upload and rewinds it. Anything but an image is rejected.
func DetectImage(file io.ReadSeeker) (string, error) {
	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", core.ErrNotAnImage
	}

	return mtype.String(), nil
}
