package lineage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/coven/pkg/types"
)

// decodeJSONL reads one Record per line. Blank and malformed lines are
// skipped.
func decodeJSONL(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning jsonl: %w", err)
	}
	return records, nil
}

// encodeJSONL writes one Record per line.
func encodeJSONL(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("writing record %s: %w", rec.VampireID, err)
		}
	}
	return nil
}

// Write exports the tree below root to path, choosing the encoder by file
// extension. The file is replaced atomically.
func Write(path string, root *types.Vampire) error {
	if !types.IsSupportedFormat(path) {
		return fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, filepath.Base(path))
	}
	records := Records(root)
	if strings.ToLower(filepath.Ext(path)) == types.FormatJSONL {
		return writeAtomic(path, func(w io.Writer) error { return encodeJSONL(w, records) })
	}
	return writeAtomic(path, func(w io.Writer) error { return encodeYAML(w, records) })
}

// writeAtomic writes a file using the temp-file, fsync, rename pattern.
func writeAtomic(path string, fill func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lineage-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if err := fill(w); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
