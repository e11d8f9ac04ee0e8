package services

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"audiodesk/logger"
	"audiodesk/types"

	"go.uber.org/zap"
)

// audioFormats maps supported extensions onto their MIME types
var audioFormats = map[string]string{
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".opus": "audio/ogg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
}

// LibraryService interface defines methods for the local media library
type LibraryService interface {
	Root() string
	ScanAudioFiles(ctx context.Context, subPath string) ([]types.AudioFile, error)
	ResolvePath(relPath string) (string, error)
	ValidateFilePath(path string) error
	GetContentType(filePath string) string
}

// libraryService implements the LibraryService interface
type libraryService struct {
	root     string
	metadata MetadataService
}

// NewLibraryService creates a library rooted at root
func NewLibraryService(root string, metadata MetadataService) LibraryService {
	return &libraryService{
		root:     root,
		metadata: metadata,
	}
}

// IsAudioFile reports whether the extension of path is a supported format
func IsAudioFile(path string) bool {
	_, ok := audioFormats[strings.ToLower(filepath.Ext(path))]
	return ok
}

func (ls *libraryService) Root() string {
	return ls.root
}

// ScanAudioFiles recursively lists audio files under the library root, or
// under subPath relative to it. Results are sorted by path.
func (ls *libraryService) ScanAudioFiles(ctx context.Context, subPath string) ([]types.AudioFile, error) {
	scanRoot := ls.root
	if subPath != "" {
		resolved, err := ls.ResolvePath(subPath)
		if err != nil {
			return nil, err
		}
		scanRoot = resolved
	}

	var files []types.AudioFile

	err := filepath.WalkDir(scanRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == scanRoot {
				return err
			}
			logger.Warn("skipping unreadable library path", zap.String("path", path), zap.Error(err))
			return nil // Continue walking, don't fail entire scan
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !IsAudioFile(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("skipping library file", zap.String("path", path), zap.Error(err))
			return nil
		}

		relativePath, err := filepath.Rel(ls.root, path)
		if err != nil {
			relativePath = path
		}
		relativePath = filepath.ToSlash(relativePath)

		metadata, err := ls.metadata.GetAudioMetadata(ctx, path)
		if err != nil {
			return fmt.Errorf("metadata for %s: %w", relativePath, err)
		}

		files = append(files, types.AudioFile{
			Filename: d.Name(),
			Path:     relativePath,
			Size:     info.Size(),
			Format:   strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
			Metadata: metadata,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", scanRoot, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// ResolvePath validates a library-relative path and returns its absolute
// location, refusing anything that escapes the root
func (ls *libraryService) ResolvePath(relPath string) (string, error) {
	if err := ls.ValidateFilePath(relPath); err != nil {
		return "", err
	}

	absRoot, err := filepath.Abs(ls.root)
	if err != nil {
		return "", fmt.Errorf("library root: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(absRoot, filepath.FromSlash(relPath)))
	if err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}

	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed")
	}
	return absPath, nil
}

// ValidateFilePath checks for path traversal attempts and other security issues
func (ls *libraryService) ValidateFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty path not allowed")
	}

	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return fmt.Errorf("path traversal not allowed")
		}
	}

	if strings.HasPrefix(path, "/") || filepath.IsAbs(path) {
		return fmt.Errorf("absolute paths not allowed")
	}

	return nil
}

// GetContentType returns the appropriate MIME type for an audio file
func (ls *libraryService) GetContentType(filePath string) string {
	if ct, ok := audioFormats[strings.ToLower(filepath.Ext(filePath))]; ok {
		return ct
	}
	return "application/octet-stream"
}
