package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/cloudvault/cloudvault-cli/internal/models"
)

const (
	barWidth = 30

	// Fill turns red once usage passes this percentage. Presentation only;
	// nothing enforces a limit below the quota.
	redThresholdPct = 85.0

	ansiBlue  = "\x1b[34m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Usage computes used megabytes and the percentage of quota, clamped to
// 100. The backend summary wins when present; otherwise usage derives from
// summing each record's kilobyte size over the full list. The two agree
// whenever both are available.
func Usage(storage *models.StorageSummary, files []models.FileRecord) (usedMB, pct float64) {
	if storage != nil {
		usedMB = storage.UsedMB
	} else {
		var totalKB float64
		for _, f := range files {
			totalKB += f.EffectiveKB()
		}
		usedMB = totalKB / 1024
	}

	pct = usedMB / QuotaMB * 100
	if pct > 100 {
		pct = 100
	}
	return usedMB, pct
}

// RenderStorageBar writes the usage line and a fill bar against the fixed
// quota, plus the file count with singular/plural wording.
func RenderStorageBar(w io.Writer, storage *models.StorageSummary, files []models.FileRecord) {
	usedMB, pct := Usage(storage, files)

	noun := "files"
	if len(files) == 1 {
		noun = "file"
	}

	filled := int(pct / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	color := ansiBlue
	if pct > redThresholdPct {
		color = ansiRed
	}
	bar := color + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + ansiReset

	fmt.Fprintf(w, "\n%s %.1f%%\n%.2f MB used of %.0f MB · %d %s\n",
		bar, pct, usedMB, QuotaMB, len(files), noun)
}
