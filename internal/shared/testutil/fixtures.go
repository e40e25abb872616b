package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CocoaCSV is a small long-format source covering both report entities.
// Ghana has a Production row with an unparsable Year.
const CocoaCSV = `Domain,Area,Element,Year,Unit,Value
Crops,Ghana,Area harvested,1961,ha,100
Crops,Ghana,Yield,1961,hg/ha,300
Crops,Ghana,Yield,1962,hg/ha,310
Crops,Ghana,Production,N/A,t,5
Crops,Côte d'Ivoire,Area harvested,1961,ha,200
Crops,Côte d'Ivoire,Yield,1961,hg/ha,400
Crops,Côte d'Ivoire,Production,1961,t,8
`

// GhanaOnlyCSV has rows for Ghana's Yield only
const GhanaOnlyCSV = "Area,Element,Year,Value\nGhana,Yield,1961,300\n"

// ReportFiles are the files a default report run writes
var ReportFiles = []string{
	"ghana_table.csv",
	"ghana_yield_scatter.png",
	"ghana_area_bar.png",
	"coast_table.csv",
	"coast_yield_scatter.png",
	"coast_area_bar.png",
	"combined_plots.pdf",
}

// WriteFile writes content to name in a fresh temporary directory and
// returns its path
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// ReadFiles reads the named files in dir
func ReadFiles(t *testing.T, dir string, names ...string) map[string][]byte {
	t.Helper()
	files := make(map[string][]byte, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		files[name] = content
	}
	return files
}
