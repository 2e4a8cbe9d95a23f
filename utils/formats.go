package utils

import "strings"

// FileCategory buckets a file by its extension for the category views.
type FileCategory string

const (
	CategoryImage    FileCategory = "image"
	CategoryVideo    FileCategory = "video"
	CategoryDocument FileCategory = "document"
	CategoryOther    FileCategory = "other"
)

// Fixed classification tables. An extension may appear in more than one
// table (pdf is both an image-pipeline format and a document); category
// precedence is image, video, document.
var imageFormats = []string{
	"jpg", "jpeg", "png", "gif", "bmp", "tiff", "svg", "webp",
	"avif", "heif", "heic", "jxl", "pdf", "ai", "psd", "eps",
	"fbx", "obj", "glb", "gltf", "usdz", "3ds", "ply",
	"arw", "cr2", "cr3", "dng", "ico", "tga", "djvu", "flif",
	"jp2", "jxr", "wdp", "hdp",
}

var videoFormats = []string{
	"mp4", "mov", "avi", "mkv", "webm", "wmv", "flv",
	"m3u8", "mpd", "ts", "m2ts", "mts", "3gp", "3g2",
	"ogv", "mpeg", "mxf", "mp3", "wav", "flac", "aac",
}

var documentFormats = []string{
	"doc", "docx", "xls", "xlsx", "ppt", "pptx", "pdf", "txt",
	"rtf", "odt", "ods", "odp", "csv", "md", "html", "htm",
	"xml", "json", "epub", "mobi", "pages", "numbers", "key",
}

var (
	imageExts    = toSet(imageFormats)
	videoExts    = toSet(videoFormats)
	documentExts = toSet(documentFormats)
)

func toSet(formats []string) map[string]struct{} {
	set := make(map[string]struct{}, len(formats))
	for _, f := range formats {
		set[f] = struct{}{}
	}
	return set
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimSpace(ext))
}

// IsImageExt reports whether the extension is in the image table.
func IsImageExt(ext string) bool {
	_, ok := imageExts[normalizeExt(ext)]
	return ok
}

// IsVideoExt reports whether the extension is in the video table.
func IsVideoExt(ext string) bool {
	_, ok := videoExts[normalizeExt(ext)]
	return ok
}

// IsDocumentExt reports whether the extension is in the document table.
func IsDocumentExt(ext string) bool {
	_, ok := documentExts[normalizeExt(ext)]
	return ok
}

// ClassifyExt maps an extension to its category. Unknown extensions fall
// into the other bucket.
func ClassifyExt(ext string) FileCategory {
	e := normalizeExt(ext)
	switch {
	case IsImageExt(e):
		return CategoryImage
	case IsVideoExt(e):
		return CategoryVideo
	case IsDocumentExt(e):
		return CategoryDocument
	default:
		return CategoryOther
	}
}
