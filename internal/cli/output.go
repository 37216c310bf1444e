package cli

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
)

func statusLine(code int) string {
	text := fmt.Sprintf("%d - %s", code, http.StatusText(code))
	switch {
	case code >= 200 && code < 300:
		return color.GreenString(text)
	case code >= 400:
		return color.RedString(text)
	default:
		return text
	}
}

func printOK(format string, a ...any)      { color.Green("✓ "+format, a...) }
func printWarning(format string, a ...any) { color.Yellow("⚠ "+format, a...) }
func printError(format string, a ...any)   { color.Red("✗ "+format, a...) }
func printInfo(format string, a ...any)    { color.Cyan(format, a...) }
