package sheets

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/justt1n/driffle-tool/internal/domain"
	"github.com/justt1n/driffle-tool/pkg/errcodes"
)

// Bound and blacklist cells may hold either a literal value or a reference
// into another sheet of the same spreadsheet, e.g. "Prices!B4" or
// "Blacklist!A2:A40". A value is a reference when it names a sheet.
var cellRefPattern = regexp.MustCompile(`^'?[^'!]+'?![A-Za-z]{1,3}[0-9]+(:[A-Za-z]{1,3}[0-9]*)?$`)

// IsCellRef reports whether the raw cell value is an A1-style reference
// rather than a literal.
func IsCellRef(raw string) bool {
	return cellRefPattern.MatchString(strings.TrimSpace(raw))
}

func parseCellRef(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	if !cellRefPattern.MatchString(trimmed) {
		return "", domain.NewError(errcodes.InvalidCellRef,
			fmt.Sprintf("%q is not an A1-style reference", raw))
	}

	return trimmed, nil
}
