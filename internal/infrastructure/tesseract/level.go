package tesseract

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ParseLevel разбирает имя уровня из конфигурации
func ParseLevel(name string) (gosseract.PageIteratorLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "block":
		return gosseract.RIL_BLOCK, nil
	case "para", "paragraph":
		return gosseract.RIL_PARA, nil
	case "line", "":
		return gosseract.RIL_TEXTLINE, nil
	case "word":
		return gosseract.RIL_WORD, nil
	default:
		return 0, fmt.Errorf("unknown recognition level %q", name)
	}
}
