package converter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/sc-allocation-list/internal/csvparser"
	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
	"github.com/ginjaninja78/sc-allocation-list/internal/xlsxparser"
)

// LoadSource parses an uploaded file into a SourceSpreadsheet, choosing the
// parser by extension. Any error here is file-scoped: no partial result is
// returned.
func LoadSource(path string) (*domain.SourceSpreadsheet, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return xlsxparser.ParseFile(path)
	case ".csv":
		return csvparser.ParseFile(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q (expected .xlsx, .xlsm or .csv)", ext)
	}
}
