package console

import (
	"fmt"
	"io"
	"strings"

	"greetings/internal/savedstate"
	"greetings/ui/tui/state"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

const labelWidth = 28

// Report describes a saved state store for printing.
type Report struct {
	Driver string
	Path   string
	Bundle savedstate.Bundle
	Err    error
}

// Print renders the saved state to the writer in a compact format.
func Print(w io.Writer, r Report) {
	fmt.Fprintf(w, "%s%s %s%s\n", colorCyan, "■", "GREETINGS STATE", colorReset)

	fmt.Fprintf(w, "%s%s%s\n", colorCyan, "─ Store", colorReset)
	printRow(w, "driver", r.Driver, "")
	printRow(w, "path", r.Path, "")

	if r.Err != nil {
		fmt.Fprintf(w, "%s─ Error%s: %s%v%s\n\n", colorCyan, colorReset, colorRed, r.Err, colorReset)
		return
	}

	fmt.Fprintf(w, "%s%s%s\n", colorCyan, "─ Slots", colorReset)
	keys := r.Bundle.Keys()
	if len(keys) == 0 {
		fmt.Fprintf(w, "  %s(empty)%s\n", colorYellow, colorReset)
	}
	expanded := 0
	for _, key := range keys {
		v := r.Bundle[key]
		if v && strings.HasSuffix(key, ".expanded") {
			expanded++
		}
		printRow(w, key, "", statusMarker(v))
	}

	onboarding := "showing"
	if !r.Bundle.Get(state.SlotOnboarding, true) {
		onboarding = "dismissed"
	}
	fmt.Fprintf(w, "%s─ Summary%s: onboarding %s | %d expanded\n\n", colorCyan, colorReset, onboarding, expanded)
}

func printRow(w io.Writer, label, value, marker string) {
	// Compact label
	if len(label) > labelWidth {
		label = label[:labelWidth-3] + "..."
	}
	// Truncate long values from the left, paths keep their tail
	if len(value) > 40 {
		value = "..." + value[len(value)-37:]
	}
	dots := strings.Repeat("·", labelWidth+2-len(label))
	fmt.Fprintf(w, "  %s%s %s%s\n", label, colorCyan+dots+colorReset, value, marker)
}

func statusMarker(v bool) string {
	if v {
		return fmt.Sprintf("%s✓%s", colorFor(v), colorReset)
	}
	return fmt.Sprintf("%s✗%s", colorFor(v), colorReset)
}

func colorFor(v bool) string {
	if v {
		return colorGreen
	}
	return colorYellow
}
