package filetypes

import (
	"path/filepath"
	"strings"
)

// PreviewKind says how a format can be rendered inline, if at all.
type PreviewKind string

const (
	PreviewImage  PreviewKind = "image"
	PreviewPDF    PreviewKind = "pdf"
	PreviewText   PreviewKind = "text"
	PreviewVideo  PreviewKind = "video"
	PreviewAudio  PreviewKind = "audio"
	PreviewOffice PreviewKind = "office"
	PreviewNone   PreviewKind = "none"
)

// TypeInfo is the display metadata for one MIME format.
type TypeInfo struct {
	Icon          string
	ColorToken    string
	Category      string
	Preview       PreviewKind
	SuggestedApps []string
}

var unknown = TypeInfo{Icon: "📄", ColorToken: "#757575", Category: "Unknown", Preview: PreviewNone}

var fileTypes = map[string]TypeInfo{
	// Images
	"image/jpeg":    {Icon: "🖼️", ColorToken: "#4CAF50", Category: "Image", Preview: PreviewImage, SuggestedApps: []string{"gimp", "feh"}},
	"image/jpg":     {Icon: "🖼️", ColorToken: "#4CAF50", Category: "Image", Preview: PreviewImage, SuggestedApps: []string{"gimp", "feh"}},
	"image/png":     {Icon: "🖼️", ColorToken: "#4CAF50", Category: "Image", Preview: PreviewImage, SuggestedApps: []string{"gimp", "feh"}},
	"image/gif":     {Icon: "🖼️", ColorToken: "#4CAF50", Category: "Image", Preview: PreviewImage, SuggestedApps: []string{"gimp"}},
	"image/webp":    {Icon: "🖼️", ColorToken: "#4CAF50", Category: "Image", Preview: PreviewImage, SuggestedApps: []string{"gimp"}},
	"image/svg+xml": {Icon: "🖼️", ColorToken: "#4CAF50", Category: "Image", Preview: PreviewImage, SuggestedApps: []string{"inkscape"}},

	// Documents
	"application/pdf": {Icon: "📄", ColorToken: "#F44336", Category: "Document", Preview: PreviewPDF, SuggestedApps: []string{"evince", "okular"}},
	"text/plain":      {Icon: "📝", ColorToken: "#2196F3", Category: "Text", Preview: PreviewText},
	"text/markdown":   {Icon: "📝", ColorToken: "#2196F3", Category: "Text", Preview: PreviewText},
	"text/html":       {Icon: "🌐", ColorToken: "#FF9800", Category: "Web", Preview: PreviewText},
	"text/css":        {Icon: "🎨", ColorToken: "#673AB7", Category: "Code", Preview: PreviewText},
	"application/json": {Icon: "📋", ColorToken: "#009688", Category: "Data", Preview: PreviewText},
	"text/xml":         {Icon: "📋", ColorToken: "#795548", Category: "Data", Preview: PreviewText},
	"text/csv":         {Icon: "📊", ColorToken: "#4CAF50", Category: "Data", Preview: PreviewText},

	// Office
	"application/msword": {Icon: "📘", ColorToken: "#2196F3", Category: "Document", Preview: PreviewOffice, SuggestedApps: []string{"libreoffice"}},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {Icon: "📘", ColorToken: "#2196F3", Category: "Document", Preview: PreviewOffice, SuggestedApps: []string{"libreoffice"}},
	"application/vnd.ms-excel": {Icon: "📊", ColorToken: "#4CAF50", Category: "Spreadsheet", Preview: PreviewOffice, SuggestedApps: []string{"libreoffice"}},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         {Icon: "📊", ColorToken: "#4CAF50", Category: "Spreadsheet", Preview: PreviewOffice, SuggestedApps: []string{"libreoffice"}},
	"application/vnd.ms-powerpoint": {Icon: "📽️", ColorToken: "#FF5722", Category: "Presentation", Preview: PreviewOffice, SuggestedApps: []string{"libreoffice"}},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {Icon: "📽️", ColorToken: "#FF5722", Category: "Presentation", Preview: PreviewOffice, SuggestedApps: []string{"libreoffice"}},

	// Video
	"video/mp4":       {Icon: "🎥", ColorToken: "#E91E63", Category: "Video", Preview: PreviewVideo, SuggestedApps: []string{"mpv", "vlc"}},
	"video/webm":      {Icon: "🎥", ColorToken: "#E91E63", Category: "Video", Preview: PreviewVideo, SuggestedApps: []string{"mpv", "vlc"}},
	"video/ogg":       {Icon: "🎥", ColorToken: "#E91E63", Category: "Video", Preview: PreviewVideo, SuggestedApps: []string{"mpv", "vlc"}},
	"video/quicktime": {Icon: "🎥", ColorToken: "#E91E63", Category: "Video", Preview: PreviewVideo, SuggestedApps: []string{"mpv", "vlc"}},
	"video/x-msvideo": {Icon: "🎥", ColorToken: "#E91E63", Category: "Video", Preview: PreviewVideo, SuggestedApps: []string{"mpv", "vlc"}},

	// Audio
	"audio/mpeg": {Icon: "🎵", ColorToken: "#9C27B0", Category: "Audio", Preview: PreviewAudio, SuggestedApps: []string{"mpv"}},
	"audio/mp3":  {Icon: "🎵", ColorToken: "#9C27B0", Category: "Audio", Preview: PreviewAudio, SuggestedApps: []string{"mpv"}},
	"audio/wav":  {Icon: "🎵", ColorToken: "#9C27B0", Category: "Audio", Preview: PreviewAudio, SuggestedApps: []string{"mpv"}},
	"audio/ogg":  {Icon: "🎵", ColorToken: "#9C27B0", Category: "Audio", Preview: PreviewAudio, SuggestedApps: []string{"mpv"}},
	"audio/aac":  {Icon: "🎵", ColorToken: "#9C27B0", Category: "Audio", Preview: PreviewAudio, SuggestedApps: []string{"mpv"}},

	// Archives
	"application/zip":              {Icon: "📦", ColorToken: "#607D8B", Category: "Archive", Preview: PreviewNone, SuggestedApps: []string{"unzip"}},
	"application/x-zip-compressed": {Icon: "📦", ColorToken: "#607D8B", Category: "Archive", Preview: PreviewNone, SuggestedApps: []string{"unzip"}},
	"application/x-rar-compressed": {Icon: "📦", ColorToken: "#607D8B", Category: "Archive", Preview: PreviewNone, SuggestedApps: []string{"unrar"}},
	"application/x-7z-compressed":  {Icon: "📦", ColorToken: "#607D8B", Category: "Archive", Preview: PreviewNone, SuggestedApps: []string{"7z"}},
	"application/gzip":             {Icon: "📦", ColorToken: "#607D8B", Category: "Archive", Preview: PreviewNone, SuggestedApps: []string{"tar"}},
	"application/x-tar":            {Icon: "📦", ColorToken: "#607D8B", Category: "Archive", Preview: PreviewNone, SuggestedApps: []string{"tar"}},

	// Code
	"text/javascript":        {Icon: "⚡", ColorToken: "#FFC107", Category: "Code", Preview: PreviewText},
	"application/javascript": {Icon: "⚡", ColorToken: "#FFC107", Category: "Code", Preview: PreviewText},
	"text/typescript":        {Icon: "🔷", ColorToken: "#2196F3", Category: "Code", Preview: PreviewText},
	"text/x-python":          {Icon: "🐍", ColorToken: "#4CAF50", Category: "Code", Preview: PreviewText},
	"text/x-java":            {Icon: "☕", ColorToken: "#FF5722", Category: "Code", Preview: PreviewText},

	"application/octet-stream": {Icon: "📄", ColorToken: "#757575", Category: "Binary", Preview: PreviewNone},
}

// Classify maps a MIME format string to its display metadata. Total:
// unrecognized formats get the Unknown default, never an error.
func Classify(format string) TypeInfo {
	if info, ok := fileTypes[strings.ToLower(strings.TrimSpace(format))]; ok {
		return info
	}
	return unknown
}

// CanPreview reports whether a format is eligible for inline preview
// rather than forced download. Office formats keep their own preview
// kind for dispatch but are not inline-previewable.
func CanPreview(format string) bool {
	p := Classify(format).Preview
	return p != PreviewNone && p != PreviewOffice
}

func Kind(format string) PreviewKind {
	return Classify(format).Preview
}

// Extension returns the lowercased extension of a file name without
// the dot, or "unknown" when the name has none.
func Extension(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext != "" {
		return ext[1:]
	}
	return "unknown"
}
