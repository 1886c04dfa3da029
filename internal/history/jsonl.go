package history

import (
	"bufio"
	"encoding/json"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/spf13/afero"
)

// Export writes every entry, oldest first, to path as JSONL. The file is
// replaced atomically.
func (l *Log) Export(fs afero.Fs, path string) (int, error) {
	entries, err := l.List(0)
	if err != nil {
		return 0, errors.Trace(err)
	}
	records := make([]json.RawMessage, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		rec, err := json.Marshal(entries[i])
		if err != nil {
			return 0, errors.Annotatef(err, "encoding entry %s", entries[i].ID)
		}
		records = append(records, rec)
	}
	if err := writeJSONL(fs, path, records); err != nil {
		return 0, errors.Trace(err)
	}
	return len(records), nil
}

// Import adds the entries of a JSONL export. Malformed lines and entries
// already present are skipped. It returns the number of lines read.
func (l *Log) Import(fs afero.Fs, path string) (int, error) {
	records, err := readJSONL(fs, path)
	if err != nil {
		return 0, errors.Trace(err)
	}
	n := 0
	for _, rec := range records {
		var e Entry
		if err := json.Unmarshal(rec, &e); err != nil || e.ID == "" {
			logger.Debugf("skipping history record: %s", rec)
			continue
		}
		if err := l.insert(e); err != nil {
			return n, errors.Trace(err)
		}
		n++
	}
	return n, nil
}

// readJSONL returns each non-empty, valid JSON line of path.
func readJSONL(fs afero.Fs, path string) ([]json.RawMessage, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "opening %s", path)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Annotatef(err, "scanning %s", path)
	}
	return records, nil
}

// writeJSONL writes records to a temp file next to path, syncs it and
// renames it over path.
func writeJSONL(fs afero.Fs, path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fs, dir, ".jsonl-*.tmp")
	if err != nil {
		return errors.Annotate(err, "creating temp file")
	}
	tmpName := tmp.Name()
	fail := func(err error, what string) error {
		tmp.Close()
		fs.Remove(tmpName)
		return errors.Annotate(err, what)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail(err, "writing record")
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail(err, "writing newline")
		}
	}
	if err := w.Flush(); err != nil {
		return fail(err, "flushing buffer")
	}
	if err := tmp.Sync(); err != nil {
		return fail(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return errors.Annotate(err, "closing temp file")
	}
	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return errors.Annotate(err, "renaming temp file")
	}
	return nil
}
