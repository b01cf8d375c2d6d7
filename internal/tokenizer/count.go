package tokenizer

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// errNilCounter is returned when counting is requested without a Counter.
var errNilCounter = errors.New("nil tokenizer counter")

// CountResult captures the outcome of counting a report.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountBytes estimates tokens for data. Invalid UTF-8 is not counted.
func CountBytes(counter Counter, data []byte) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errNilCounter
	}
	if !utf8.Valid(data) {
		return CountResult{Counted: false}, nil
	}
	tokens, err := counter.CountString(string(data))
	if err != nil {
		return CountResult{}, err
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}

// CountFile reads the report at path and estimates its token count.
//
// #nosec G304
func CountFile(counter Counter, path string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errNilCounter
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return CountResult{}, fmt.Errorf("read %s: %w", path, readErr)
	}
	return CountBytes(counter, data)
}
