package dumper

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// OutcomeKind classifies a single file read attempt.
type OutcomeKind int

const (
	// OutcomeText means the file decoded as UTF-8 and holds non-blank text.
	OutcomeText OutcomeKind = iota
	// OutcomeEmpty covers zero-byte files and whitespace-only text.
	OutcomeEmpty
	// OutcomeBinary means the content is not valid UTF-8.
	OutcomeBinary
	// OutcomePermissionDenied means the file could not be opened or read for lack of permission.
	OutcomePermissionDenied
	// OutcomeReadError covers every other I/O failure.
	OutcomeReadError
)

const (
	emptyFileMarker        = "content: this file is empty\n"
	binaryFileMarker       = "content: [cannot be read as text, likely a binary file]\n"
	permissionDeniedMarker = "content: [permission denied]\n"
	readErrorMarkerFormat  = "content: [error reading file: %s]\n"
	textContentFormat      = "content:\n%s\n"

	emptyDirectoryMarker           = "content: this directory is empty\n"
	populatedDirectoryMarker       = "content: [this is a directory]\n"
	directoryReadErrorMarkerFormat = "content: [error reading directory: %s]\n"
)

// ReadOutcome is the result of reading one file for the report.
type ReadOutcome struct {
	Kind   OutcomeKind
	Text   string
	Detail string
}

// ContentLine renders the outcome as the content line written after a file header.
func (outcome ReadOutcome) ContentLine() string {
	switch outcome.Kind {
	case OutcomeText:
		return fmt.Sprintf(textContentFormat, outcome.Text)
	case OutcomeEmpty:
		return emptyFileMarker
	case OutcomeBinary:
		return binaryFileMarker
	case OutcomePermissionDenied:
		return permissionDeniedMarker
	default:
		return fmt.Sprintf(readErrorMarkerFormat, outcome.Detail)
	}
}

// classifyReadError maps an I/O failure onto a ReadOutcome.
func classifyReadError(readError error) ReadOutcome {
	switch {
	case errors.Is(readError, encoding.ErrInvalidUTF8):
		return ReadOutcome{Kind: OutcomeBinary}
	case errors.Is(readError, fs.ErrPermission):
		return ReadOutcome{Kind: OutcomePermissionDenied}
	default:
		return ReadOutcome{Kind: OutcomeReadError, Detail: readError.Error()}
	}
}

// readFile reads filePath as UTF-8 text. Zero-byte files are never opened.
//
// #nosec G304
func readFile(filePath string) ReadOutcome {
	fileInfo, statError := os.Stat(filePath)
	if statError != nil {
		return classifyReadError(statError)
	}
	if fileInfo.Size() == 0 {
		return ReadOutcome{Kind: OutcomeEmpty}
	}

	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return classifyReadError(openError)
	}
	defer fileHandle.Close()

	contentBytes, readError := io.ReadAll(transform.NewReader(fileHandle, encoding.UTF8Validator))
	if readError != nil {
		return classifyReadError(readError)
	}
	text := normalizeLineEndings(string(contentBytes))
	if strings.TrimFunc(text, isBlankRune) == "" {
		return ReadOutcome{Kind: OutcomeEmpty}
	}
	return ReadOutcome{Kind: OutcomeText, Text: text}
}

// isBlankRune reports Unicode whitespace and the information separators
// U+001C to U+001F, which text-mode readers also treat as blank.
func isBlankRune(character rune) bool {
	return unicode.IsSpace(character) || (character >= '\x1c' && character <= '\x1f')
}

// normalizeLineEndings converts CRLF and lone CR to LF, matching text-mode reads.
func normalizeLineEndings(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
}

// DirectoryOutcome classifies a directory emptiness check.
type DirectoryOutcome struct {
	Empty  bool
	Detail string
}

// ContentLine renders the outcome as the content line written after a directory header.
func (outcome DirectoryOutcome) ContentLine() string {
	switch {
	case outcome.Detail != "":
		return fmt.Sprintf(directoryReadErrorMarkerFormat, outcome.Detail)
	case outcome.Empty:
		return emptyDirectoryMarker
	default:
		return populatedDirectoryMarker
	}
}

// inspectDirectory reports whether directoryPath has no entries at all.
// Excluded names still count as entries.
func inspectDirectory(directoryPath string) DirectoryOutcome {
	directoryHandle, openError := os.Open(directoryPath)
	if openError != nil {
		return DirectoryOutcome{Detail: openError.Error()}
	}
	defer directoryHandle.Close()

	_, readError := directoryHandle.Readdirnames(1)
	if errors.Is(readError, io.EOF) {
		return DirectoryOutcome{Empty: true}
	}
	if readError != nil {
		return DirectoryOutcome{Detail: readError.Error()}
	}
	return DirectoryOutcome{}
}
