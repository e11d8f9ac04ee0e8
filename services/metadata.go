package services

import (
	"context"
	"os"
	"strings"
	"unicode/utf8"

	"audiodesk/types"
)

// Placeholder values returned until real tag reading exists
const (
	UnknownTitle  = "Unknown"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// MetadataService returns metadata for an audio file path
type MetadataService interface {
	GetAudioMetadata(ctx context.Context, filePath string) (*types.AudioMetadata, error)
}

// metadataService builds placeholder metadata from the path string alone.
// The file is never opened.
type metadataService struct{}

// NewMetadataService creates a new metadata service
func NewMetadataService() MetadataService {
	return &metadataService{}
}

// GetAudioMetadata never fails; the error return is kept for the day the
// file is actually parsed.
func (ms *metadataService) GetAudioMetadata(ctx context.Context, filePath string) (*types.AudioMetadata, error) {
	return &types.AudioMetadata{
		Title:    FileName(filePath, UnknownTitle),
		Artist:   UnknownArtist,
		Album:    UnknownAlbum,
		Duration: 0,
		FilePath: filePath,
	}, nil
}

// FileName returns the final component of path, or fallback when there is
// none. Empty and "." components are skipped; a path ending in ".." or whose
// final component is not valid UTF-8 has no file name.
func FileName(path, fallback string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r < utf8.RuneSelf && os.IsPathSeparator(uint8(r))
	})

	for i := len(parts) - 1; i >= 0; i-- {
		switch parts[i] {
		case ".":
			continue
		case "..":
			return fallback
		}
		if !utf8.ValidString(parts[i]) {
			return fallback
		}
		return parts[i]
	}
	return fallback
}
