package asset

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	FolderItems   = "lost-found-items"
	FolderAvatars = "avatars"

	MaxItemImageSize = 5 << 20
	MaxAvatarSize    = 2 << 20
)

// File is an uploaded image held in memory.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Host stores a file under folder and returns its public URL.
type Host interface {
	Upload(ctx context.Context, f File, folder string) (string, error)
}

// objectName derives a readable, unique name from the client filename.
func objectName(filename string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	s := slug.Make(base)
	if s == "" || s == "." {
		s = "image"
	}
	if len(s) > 40 {
		s = strings.Trim(s[:40], "-")
	}
	return s + "-" + uuid.NewString()[:8]
}
