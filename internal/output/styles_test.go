package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.Color
		wantDim  bool
	}{
		{name: "converted returns green", status: StatusConverted, wantFG: colorGreen},
		{name: "updated returns yellow", status: StatusUpdated, wantFG: ColorYellow},
		{name: "deleted returns red", status: StatusDeleted, wantFG: colorRed},
		{name: "failed returns bold red", status: StatusFailed, wantBold: true, wantFG: colorBoldRed},
		{name: "unknown returns default unstyled", status: "unknown-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := statusStyle(tt.status)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
			if tt.wantFG != "" {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			} else {
				assert.Equal(t, lipgloss.NoColor{}, style.GetForeground())
			}
		})
	}
}

func TestFormatFileLine(t *testing.T) {
	line := FormatFileLine("src/a.template.js", StatusConverted)

	assert.True(t, strings.HasPrefix(line, "f:"), "line should start with the f: prefix")
	assert.Contains(t, line, "src/a.template.js")
	assert.True(t, strings.HasSuffix(line, StatusConverted))
}

func TestFormatFileLine_AlignsStatus(t *testing.T) {
	short := FormatFileLine("a.js", StatusDeleted)
	long := FormatFileLine("src/components/deeply/nested/x.template.js", StatusDeleted)

	assert.Equal(t, strings.Index(short, StatusDeleted), strings.Index(long, StatusDeleted))
}

func TestFormatFileLine_LongPathKeepsTwoSpaces(t *testing.T) {
	path := strings.Repeat("p", minPathColumnWidth+10)
	line := FormatFileLine(path, StatusFailed)
	assert.Contains(t, line, path+"  "+StatusFailed)
}

func TestFormatConversion(t *testing.T) {
	got := FormatConversion("x.template.html", "x.template.js")
	assert.Equal(t, "x.template.html -> x.template.js", got)
}

func TestFormatCheckmark(t *testing.T) {
	assert.Equal(t, "✔ done", FormatCheckmark("done"))
	assert.Equal(t, "✘ failed", FormatCross("failed"))
}
