package search

import (
	"fmt"
	"strings"
)

// The completion service encodes confidence in its output as
// "<flag>|<answer>", flag "T" meaning the context supported a reliable
// answer. Only the first delimiter splits; answers may contain "|".
const validFlag = "T"

func parseCompletion(raw string) (valid bool, answer string, err error) {
	flag, answer, found := strings.Cut(raw, "|")
	if !found {
		return false, "", fmt.Errorf("malformed completion output: missing %q delimiter", "|")
	}
	return flag == validFlag, answer, nil
}
