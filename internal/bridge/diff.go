package bridge

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DiffNote describes how two differing outputs disagree. When both outputs
// end in a parseable number the note is quantitative, e.g.
// "0.0100 (C++: 398.67, Mojo: 398.68)"; otherwise it falls back to quoting
// both outputs. Returns "" when the outputs match or either is empty.
//
// Extracting the number is a best-effort heuristic over free-form runner
// output: the token after the last colon (or the last whitespace-separated
// token when there is none) is tried as a float. Malformed or multi-number
// lines therefore yield the qualitative note, not a guess.
func DiffNote(refOutput, candOutput string) string {
	if refOutput == "" || candOutput == "" || refOutput == candOutput {
		return ""
	}

	refVal, refOK := trailingNumber(refOutput)
	candVal, candOK := trailingNumber(candOutput)
	if !refOK || !candOK {
		return fmt.Sprintf("'%s' vs '%s'", candOutput, refOutput)
	}

	diff := math.Round(math.Abs(refVal-candVal)*1e4) / 1e4
	return fmt.Sprintf("%.4f (C++: %s, Mojo: %s)",
		diff,
		strconv.FormatFloat(refVal, 'f', -1, 64),
		strconv.FormatFloat(candVal, 'f', -1, 64))
}

// trailingNumber pulls the trailing numeric token out of an output line.
func trailingNumber(output string) (float64, bool) {
	token := output
	if idx := strings.LastIndex(output, ":"); idx >= 0 {
		token = output[idx+1:]
	} else if fields := strings.Fields(output); len(fields) > 0 {
		token = fields[len(fields)-1]
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0, false
	}
	return val, true
}
