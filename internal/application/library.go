package application

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/logging"
)

// LibraryEntry pairs a video with its on-disk details for reporting
type LibraryEntry struct {
	Video       domain.VideoFile
	Size        int64
	HasSubtitle bool
}

// LibraryService enumerates the videos a run will consider
type LibraryService struct {
	fs         afero.Fs
	extensions map[string]struct{}
	log        *slog.Logger
}

// NewLibraryService creates a new library service
func NewLibraryService(fs afero.Fs, extensions []string, log *slog.Logger) *LibraryService {
	if log == nil {
		log = logging.NewNop()
	}
	return &LibraryService{
		fs:         fs,
		extensions: extensionSet(extensions),
		log:        log.With("component", "library"),
	}
}

// Single validates an explicitly named video file
func (s *LibraryService) Single(path string) (domain.VideoFile, error) {
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.VideoFile{}, fmt.Errorf("%w: %s", domain.ErrVideoNotFound, path)
		}
		return domain.VideoFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return domain.VideoFile{}, fmt.Errorf("%w: %s", domain.ErrNotRegularFile, path)
	}

	s.log.Info("processing single file", "video", path)
	return domain.NewVideoFile(path), nil
}

// Scan walks root recursively and returns every file whose extension
// is in the configured set, in walk order.
func (s *LibraryService) Scan(root string) ([]domain.VideoFile, error) {
	var videos []domain.VideoFile

	err := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if _, ok := s.extensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		videos = append(videos, domain.NewVideoFile(path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	s.log.Info("library scanned", "root", root, "videos", len(videos))
	return videos, nil
}

// Inventory returns scan results enriched with size and subtitle status
func (s *LibraryService) Inventory(root string) ([]LibraryEntry, error) {
	videos, err := s.Scan(root)
	if err != nil {
		return nil, err
	}

	entries := make([]LibraryEntry, 0, len(videos))
	for _, video := range videos {
		entry := LibraryEntry{Video: video}
		if info, err := s.fs.Stat(video.Path); err == nil {
			entry.Size = info.Size()
		}
		if ok, _ := afero.Exists(s.fs, video.SubtitlePath()); ok {
			entry.HasSubtitle = true
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DefaultRoot resolves the scan root when none is given: the directory
// holding the binary, falling back to the working directory.
func DefaultRoot() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// extensionSet normalizes configured extensions ("mkv" or ".mkv") into
// a lowercase dotted lookup set.
func extensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}
