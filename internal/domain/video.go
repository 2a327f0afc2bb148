package domain

import (
	"path/filepath"
	"strings"
)

// VideoFile represents one media file slated for subtitle generation
type VideoFile struct {
	Path string // absolute path to the video
	Dir  string // parent directory
	Base string // file name without extension
}

// NewVideoFile derives a VideoFile from a path
func NewVideoFile(path string) VideoFile {
	name := filepath.Base(path)
	return VideoFile{
		Path: path,
		Dir:  filepath.Dir(path),
		Base: strings.TrimSuffix(name, filepath.Ext(name)),
	}
}

// Name returns the file name including extension
func (v VideoFile) Name() string {
	return filepath.Base(v.Path)
}

// SubtitlePath returns the canonical final subtitle path. The output is
// always English (non-English audio is translated), so the language
// suffix is a constant.
func (v VideoFile) SubtitlePath() string {
	return filepath.Join(v.Dir, v.Base+".en.srt")
}

// RawSubtitlePath returns the path the recognizer conventionally writes
// to when given the video's directory as output location
func (v VideoFile) RawSubtitlePath() string {
	return filepath.Join(v.Dir, v.Base+".srt")
}

// Extensions the recognizer may leave behind after a detection pass
var scratchExtensions = []string{".txt", ".vtt", ".srt", ".json", ".tsv"}

// ScratchArtifacts lists every detection byproduct path the recognizer
// may have written for this video under dir
func (v VideoFile) ScratchArtifacts(dir string) []string {
	paths := make([]string, 0, len(scratchExtensions))
	for _, ext := range scratchExtensions {
		paths = append(paths, filepath.Join(dir, v.Base+ext))
	}
	return paths
}
