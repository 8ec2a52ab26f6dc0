// Package mimetype guesses the MIME type of an attachment from the extension
// of its file name.
package mimetype

import (
	"mime"
	"strings"
)

// Fallback is returned when nothing better is known about an extension.
const Fallback = "application/octet-stream"

// builtin covers the attachments most commonly seen in email so that the
// answer does not depend on the mime.types files installed on the host.
var builtin = map[string]string{
	"7z":   "application/x-7z-compressed",
	"avi":  "video/x-msvideo",
	"bmp":  "image/bmp",
	"csv":  "text/csv",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"eml":  "message/rfc822",
	"gif":  "image/gif",
	"gz":   "application/gzip",
	"htm":  "text/html",
	"html": "text/html",
	"ics":  "text/calendar",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"js":   "application/javascript",
	"json": "application/json",
	"m4a":  "audio/mp4",
	"md":   "text/markdown",
	"mov":  "video/quicktime",
	"mp3":  "audio/mpeg",
	"mp4":  "video/mp4",
	"odt":  "application/vnd.oasis.opendocument.text",
	"pdf":  "application/pdf",
	"png":  "image/png",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"rtf":  "application/rtf",
	"svg":  "image/svg+xml",
	"tar":  "application/x-tar",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"txt":  "text/plain",
	"vcf":  "text/vcard",
	"wav":  "audio/wav",
	"webp": "image/webp",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"xml":  "application/xml",
	"zip":  "application/zip",
}

// Detect returns the MIME type for a bare file extension (no dot), such as
// "png". The lookup is case-insensitive. Parameters the system table may add,
// such as a charset, are dropped. Unknown extensions return Fallback.
func Detect(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext == "" {
		return Fallback
	}

	if t, ok := builtin[ext]; ok {
		return t
	}

	if t := mime.TypeByExtension("." + ext); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
	}

	return Fallback
}

// DetectFilename returns the MIME type for the extension of a file name. The
// extension is whatever follows the last dot. A name without a dot is treated
// as if the whole name were the extension.
func DetectFilename(name string) string {
	if ix := strings.LastIndexByte(name, '.'); ix >= 0 {
		return Detect(name[ix+1:])
	}
	return Detect(name)
}
