package payload

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ginjaninja78/transfer-payload-converter/internal/types"
)

// Outcome is the terminal state being reported for every line of a build.
type Outcome string

const (
	OutcomeSuccess Outcome = "SUCCESS"
	OutcomeError   Outcome = "ERROR"
)

// ParseOutcome parses "SUCCESS" or "ERROR", ignoring case and surrounding space.
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(strings.ToUpper(strings.TrimSpace(s))) {
	case OutcomeSuccess:
		return OutcomeSuccess, nil
	case OutcomeError:
		return OutcomeError, nil
	default:
		return "", fmt.Errorf("invalid outcome %q: expected SUCCESS or ERROR", s)
	}
}

// Status maps the outcome to the record status sent downstream.
func (o Outcome) Status() types.Status {
	if o == OutcomeSuccess {
		return types.StatusSettled
	}
	return types.StatusError
}

// Selection is an optional catalog position. The zero value is "no selection".
type Selection struct {
	index int
	set   bool
}

// NoSelection returns the empty selection.
func NoSelection() Selection {
	return Selection{}
}

// SelectIndex selects the catalog entry at index.
func SelectIndex(index int) Selection {
	return Selection{index: index, set: true}
}

// leadingInt matches an optionally signed run of digits at the start of a value.
var leadingInt = regexp.MustCompile(`^[+-]?[0-9]+`)

// ParseSelection parses the value of an error-code picker. The empty string is
// no selection. Otherwise the leading integer is used ("2abc" and "2.5" both
// select 2); a value with no leading integer is a selection that matches no
// catalog entry.
func ParseSelection(s string) Selection {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoSelection()
	}
	index, err := strconv.Atoi(leadingInt.FindString(s))
	if err != nil {
		return SelectIndex(-1)
	}
	return SelectIndex(index)
}

// Index returns the selected position and whether a selection was made.
func (s Selection) Index() (int, bool) {
	return s.index, s.set
}

func (s Selection) String() string {
	if !s.set {
		return ""
	}
	return strconv.Itoa(s.index)
}
