package capture

import (
	"strconv"
	"strings"
	"time"

	"github.com/akv004/grab/internal/model"
)

// GenerateFilename expands the naming template against the current UTC
// instant. Tokens: {date} as YYYY-MM-DD, {time} as HH-MM-SS, {mode} as the
// lowercase mode token, {timestamp} as Unix epoch seconds. Unrecognized
// tokens pass through verbatim.
func GenerateFilename(template string, mode model.CaptureMode) string {
	now := time.Now().UTC()
	name := strings.ReplaceAll(template, "{date}", now.Format("2006-01-02"))
	name = strings.ReplaceAll(name, "{time}", now.Format("15-04-05"))
	name = strings.ReplaceAll(name, "{mode}", mode.FileToken())
	name = strings.ReplaceAll(name, "{timestamp}", strconv.FormatInt(now.Unix(), 10))
	return name
}
