package ops

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hpungsan/selah/internal/errors"
	"github.com/hpungsan/selah/internal/journal"
)

// ImportMode controls collision behavior during import.
type ImportMode string

const (
	ImportModeError   ImportMode = "error"   // abort on any bad line or id collision
	ImportModeReplace ImportMode = "replace" // upsert valid lines, report the rest
)

// maxImportLine bounds a single JSONL line.
const maxImportLine = 4 << 20

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string     // required
	Mode ImportMode // default: error
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError describes one rejected line.
type ImportError struct {
	Line    int    `json:"line"`
	ID      string `json:"id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Import reads a JSONL export back into the journal. Nothing is written
// unless the whole batch is accepted, and accepted entries land in one write.
func Import(ctx context.Context, env *Env, input ImportInput) (*ImportOutput, error) {
	if input.Mode == "" {
		input.Mode = ImportModeError
	}
	if input.Mode != ImportModeError && input.Mode != ImportModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: error, replace")
	}
	if err := ValidatePath(input.Path, PathCheckRead, env.Config); err != nil {
		return nil, err
	}

	file, err := openNoFollow(input.Path)
	if err != nil {
		if errors.As(err) != nil {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	entries, lines, parseErrors := parseExport(file)

	out := &ImportOutput{Errors: []ImportError{}}
	if input.Mode == ImportModeError {
		if len(parseErrors) > 0 {
			out.Errors = parseErrors
			return out, nil
		}
		existing, err := env.Store.Load(ctx)
		if err != nil {
			return nil, err
		}
		stored := make(map[string]bool, len(existing))
		for _, e := range existing {
			stored[e.ID] = true
		}
		seen := make(map[string]int, len(entries))
		for i, e := range entries {
			msg := ""
			switch {
			case stored[e.ID]:
				msg = fmt.Sprintf("entry with id %q already exists", e.ID)
			case seen[e.ID] != 0:
				msg = fmt.Sprintf("id %q repeats line %d", e.ID, seen[e.ID])
			}
			if msg != "" {
				out.Errors = append(out.Errors, ImportError{
					Line:    lines[i],
					ID:      e.ID,
					Code:    "ID_COLLISION",
					Message: msg,
				})
				return out, nil
			}
			seen[e.ID] = lines[i]
		}
	} else {
		out.Errors = append(out.Errors, parseErrors...)
		out.Skipped = len(parseErrors)
	}

	if len(entries) > 0 {
		if err := env.Store.SaveAll(ctx, entries); err != nil {
			return nil, err
		}
	}
	out.Imported = uniqueIDs(entries)
	return out, nil
}

// uniqueIDs counts distinct ids; SaveAll keeps only the last of a repeated id.
func uniqueIDs(entries []journal.Entry) int {
	ids := make(map[string]bool, len(entries))
	for _, e := range entries {
		ids[e.ID] = true
	}
	return len(ids)
}

// parseExport decodes every record line, skipping the header. lines holds
// the source line number of each decoded entry.
func parseExport(r io.Reader) (entries []journal.Entry, lines []int, parseErrors []ImportError) {

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxImportLine)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if isHeader(line) {
			continue
		}

		e, err := journal.DecodeEntry(line)
		if err != nil {
			parseErrors = append(parseErrors, ImportError{
				Line:    lineNum,
				Code:    "INVALID_RECORD",
				Message: err.Error(),
			})
			continue
		}
		entries = append(entries, *e)
		lines = append(lines, lineNum)
	}

	if err := scanner.Err(); err != nil {
		parseErrors = append(parseErrors, ImportError{
			Line:    lineNum,
			Code:    "READ_ERROR",
			Message: fmt.Sprintf("failed to read file: %v", err),
		})
	}
	return entries, lines, parseErrors
}

func isHeader(line []byte) bool {
	var h ExportHeader
	if err := json.Unmarshal(line, &h); err != nil {
		return false
	}
	return h.SelahExport
}
