// Package dumper walks a directory tree and writes every retained file's
// path and text into a single plain-text report, echoing each record to a
// console writer.
package dumper

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	fileHeaderFormat      = "\nfile: %s\n"
	directoryHeaderFormat = "\ndirectory: %s\n"
	completionFormat      = "\n--- done, all content written to %s ---\n"

	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	errorCreateOutputFormat = "creating output file %s: %w"
	errorListRootFormat     = "reading root directory %s: %w"
	errorWriteOutputFormat  = "writing output file %s: %w"
	errorFlushOutputFormat  = "flushing output file %s: %w"
	errorCloseOutputFormat  = "closing output file %s: %w"

	warningSkipSubdirMessage = "skipping subdirectory"
)

// Dumper writes the tree report for a root directory.
type Dumper struct {
	excludeNames ExclusionSet
	console      io.Writer
	logger       *zap.Logger
}

// New constructs a Dumper. A nil console discards the echo and a nil logger is replaced with a no-op logger.
func New(excludeNames []string, console io.Writer, logger *zap.Logger) *Dumper {
	if console == nil {
		console = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dumper{
		excludeNames: NewExclusionSet(excludeNames),
		console:      console,
		logger:       logger,
	}
}

// subdirectory is a retained directory name in a listing. Linked directories
// are reported but not descended into.
type subdirectory struct {
	name     string
	isLinked bool
}

// directoryListing is the filtered view of one directory.
type directoryListing struct {
	path           string
	fileNames      []string
	subdirectories []subdirectory
}

// recordWriter writes to the report and mirrors each write to the console.
type recordWriter struct {
	outputPath string
	output     *bufio.Writer
	console    io.Writer
}

func (writer *recordWriter) emit(text string) error {
	if _, writeError := writer.output.WriteString(text); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, writer.outputPath, writeError)
	}
	fmt.Fprintln(writer.console, strings.TrimSpace(text))
	return nil
}

// Dump truncates outputPath and writes a record for every file and directory
// under rootDirectory whose base name is not excluded. Excluded directories
// are never entered. Only a failure to create the output, to list the root,
// or to write the report is returned; per-entry problems become markers.
func (dumper *Dumper) Dump(rootDirectory string, outputPath string) (dumpError error) {
	absoluteRoot, absolutePathError := filepath.Abs(rootDirectory)
	if absolutePathError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, rootDirectory, absolutePathError)
	}

	// #nosec G304
	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return fmt.Errorf(errorCreateOutputFormat, outputPath, createError)
	}
	bufferedOutput := bufio.NewWriter(outputFile)
	defer func() {
		flushError := bufferedOutput.Flush()
		closeError := outputFile.Close()
		if dumpError != nil {
			return
		}
		if flushError != nil {
			dumpError = fmt.Errorf(errorFlushOutputFormat, outputPath, flushError)
			return
		}
		if closeError != nil {
			dumpError = fmt.Errorf(errorCloseOutputFormat, outputPath, closeError)
		}
	}()

	writer := &recordWriter{outputPath: outputPath, output: bufferedOutput, console: dumper.console}

	rootListing, listError := dumper.listDirectory(absoluteRoot)
	if listError != nil {
		return fmt.Errorf(errorListRootFormat, absoluteRoot, listError)
	}
	if walkError := dumper.walk(writer, rootListing); walkError != nil {
		return walkError
	}
	if flushError := bufferedOutput.Flush(); flushError != nil {
		return fmt.Errorf(errorFlushOutputFormat, outputPath, flushError)
	}

	fmt.Fprintf(dumper.console, completionFormat, outputPath)
	return nil
}

// walk writes the records of one listing and then descends into its
// retained, non-linked subdirectories in listing order.
func (dumper *Dumper) walk(writer *recordWriter, listing directoryListing) error {
	for _, fileName := range listing.fileNames {
		filePath := filepath.Join(listing.path, fileName)
		if writeError := writer.emit(fmt.Sprintf(fileHeaderFormat, filePath)); writeError != nil {
			return writeError
		}
		if writeError := writer.emit(readFile(filePath).ContentLine()); writeError != nil {
			return writeError
		}
	}

	for _, child := range listing.subdirectories {
		directoryPath := filepath.Join(listing.path, child.name)
		if writeError := writer.emit(fmt.Sprintf(directoryHeaderFormat, directoryPath)); writeError != nil {
			return writeError
		}
		if writeError := writer.emit(inspectDirectory(directoryPath).ContentLine()); writeError != nil {
			return writeError
		}
	}

	for _, child := range listing.subdirectories {
		if child.isLinked {
			continue
		}
		directoryPath := filepath.Join(listing.path, child.name)
		childListing, listError := dumper.listDirectory(directoryPath)
		if listError != nil {
			dumper.logger.Warn(warningSkipSubdirMessage, zap.String("path", directoryPath), zap.Error(listError))
			continue
		}
		if walkError := dumper.walk(writer, childListing); walkError != nil {
			return walkError
		}
	}
	return nil
}

// listDirectory reads directoryPath and drops excluded names before anything
// is written or descended into.
func (dumper *Dumper) listDirectory(directoryPath string) (directoryListing, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return directoryListing{}, readDirectoryError
	}

	listing := directoryListing{path: directoryPath}
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if dumper.excludeNames.Contains(entryName) {
			continue
		}
		switch {
		case directoryEntry.IsDir():
			listing.subdirectories = append(listing.subdirectories, subdirectory{name: entryName})
		case directoryEntry.Type()&fs.ModeSymlink != 0 && isLinkedDirectory(filepath.Join(directoryPath, entryName)):
			listing.subdirectories = append(listing.subdirectories, subdirectory{name: entryName, isLinked: true})
		default:
			listing.fileNames = append(listing.fileNames, entryName)
		}
	}
	return listing, nil
}

func isLinkedDirectory(linkPath string) bool {
	targetInfo, statError := os.Stat(linkPath)
	return statError == nil && targetInfo.IsDir()
}
