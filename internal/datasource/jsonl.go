package datasource

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/trellis/pkg/model"
)

const (
	// Average serialized entry size, used to pre-size the result slice
	// from the file length.
	avgEntryBytes = 512
	minCapacity   = 64
	maxCapacity   = 200_000

	// Lines longer than the reader buffer are malformed for our format and
	// get skipped rather than grown without bound.
	readerBufferSize = 1 << 20
)

// ParseOptions tunes JSONL parsing.
type ParseOptions struct {
	// WarningHandler receives one message per skipped line. Nil discards.
	WarningHandler func(string)
}

// LoadJSONL reads a JSONL outline file into flat entries. Malformed or
// invalid lines are skipped with a warning; only I/O failures abort.
func LoadJSONL(path string) ([]model.Entry, error) {
	return LoadJSONLWithOptions(path, ParseOptions{
		WarningHandler: func(msg string) {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
		},
	})
}

// LoadJSONLWithOptions reads a JSONL outline file with explicit options.
func LoadJSONLWithOptions(path string, opts ParseOptions) ([]model.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	capacity := minCapacity
	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		capacity = int(info.Size() / avgEntryBytes)
		if capacity < minCapacity {
			capacity = minCapacity
		}
		if capacity > maxCapacity {
			capacity = maxCapacity
		}
	}

	warn := opts.WarningHandler
	if warn == nil {
		warn = func(string) {}
	}

	entries := make([]model.Entry, 0, capacity)
	reader := bufio.NewReaderSize(f, readerBufferSize)
	lineNum := 0

	for {
		line, isPrefix, err := reader.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		lineNum++

		if isPrefix {
			// Drain the rest of the oversized line, then skip it.
			for isPrefix {
				_, isPrefix, err = reader.ReadLine()
				if err != nil {
					break
				}
			}
			warn(fmt.Sprintf("%s:%d: line exceeds %d bytes, skipped", path, lineNum, readerBufferSize))
			continue
		}

		if lineNum == 1 {
			line = stripBOM(line)
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var entry model.Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			warn(fmt.Sprintf("%s:%d: bad record: %v", path, lineNum, err))
			continue
		}

		entry.Normalize()
		if err := entry.Validate(); err != nil {
			warn(fmt.Sprintf("%s:%d: %v", path, lineNum, err))
			continue
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// probeJSONL checks that the file opens and its first record parses.
func probeJSONL(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := bufio.NewReaderSize(f, readerBufferSize)
	for lineNum := 1; ; lineNum++ {
		line, isPrefix, err := reader.ReadLine()
		if err == io.EOF {
			// Empty files are valid sources: an outline with no entries.
			return nil
		}
		if err != nil {
			return err
		}
		if isPrefix {
			return fmt.Errorf("%s:%d: line exceeds %d bytes", path, lineNum, readerBufferSize)
		}
		if lineNum == 1 {
			line = stripBOM(line)
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var entry model.Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		return nil
	}
}

func stripBOM(line []byte) []byte {
	return bytes.TrimPrefix(line, []byte{0xEF, 0xBB, 0xBF})
}

// AppendJSONL appends one entry to an outline file, creating it when absent.
// Used by the new-entry form; readers pick the write up through the watcher.
func AppendJSONL(path string, entry model.Entry) error {
	entry.Normalize()
	if err := entry.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
