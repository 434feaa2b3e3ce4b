package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/cloudvault/cloudvault-cli/internal/models"
)

// fileIcons maps lowercase file extensions to their card icon.
var fileIcons = map[string]string{
	"pdf": "📄", "doc": "📝", "docx": "📝", "xls": "📊", "xlsx": "📊",
	"ppt": "📑", "pptx": "📑", "jpg": "🖼️", "jpeg": "🖼️", "png": "🖼️",
	"gif": "🎞️", "mp4": "🎬", "mp3": "🎵", "wav": "🎵", "zip": "🗜️",
	"rar": "🗜️", "txt": "📃", "csv": "📊", "json": "⚙️", "svg": "🎨",
}

const defaultIcon = "📁"

// Icon picks a card icon from the substring after the last dot, matched
// case-insensitively. Unknown and missing extensions get the default.
func Icon(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return defaultIcon
	}
	if icon, ok := fileIcons[strings.ToLower(name[idx+1:])]; ok {
		return icon
	}
	return defaultIcon
}

// RenderFiles writes one card per file, in the order given. Sorting is a
// separate explicit step; this function never reorders. File names pass
// through as plain data, never interpolated into any markup.
func RenderFiles(w io.Writer, files []models.FileRecord) {
	if len(files) == 0 {
		fmt.Fprintln(w, "☁️  No files yet. Upload your first file!")
		return
	}

	for _, f := range files {
		meta := fmt.Sprintf("%g KB", f.EffectiveKB())
		if f.UploadedAt != "" {
			meta += " · " + f.UploadedAt
		}
		fmt.Fprintf(w, "%s  %s\n    %s\n", Icon(f.Name), f.Name, meta)
	}
}
