package output

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DirWriter is the in-scope stand-in for the HDF5-backed external store
// spec.md §1 puts out of scope. It lays out the same documented groups
// (metadata once, one gob-encoded row per sample) as flat files under a
// directory, rather than a single chunked HDF5 dataset, so the coordinator
// has something concrete to drive without this module taking on an HDF5
// binding.
type DirWriter struct {
	dir      string
	rowFile  *os.File
	rowEnc   *gob.Encoder
	metaDone bool
}

// NewDirWriter creates dir (and any missing parents) and prepares a
// rows.gob file inside it for successive WriteRow calls.
func NewDirWriter(dir string) (*DirWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", dir)
	}

	f, err := os.Create(filepath.Join(dir, "rows.gob"))
	if err != nil {
		return nil, errors.Wrap(err, "creating rows file")
	}

	return &DirWriter{dir: dir, rowFile: f, rowEnc: gob.NewEncoder(f)}, nil
}

// WriteMetadata writes the run's fixed metadata to metadata.gob. It may be
// called at most once.
func (w *DirWriter) WriteMetadata(meta Metadata) error {
	if w.metaDone {
		return errors.Errorf("metadata already written to %s", w.dir)
	}

	f, err := os.Create(filepath.Join(w.dir, "metadata.gob"))
	if err != nil {
		return errors.Wrap(err, "creating metadata file")
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(meta); err != nil {
		return errors.Wrap(err, "encoding metadata")
	}

	w.metaDone = true
	return nil
}

// WriteRow appends one posterior sample's row to rows.gob.
func (w *DirWriter) WriteRow(row Row) error {
	if err := w.rowEnc.Encode(row); err != nil {
		return errors.Wrapf(err, "encoding row %d", row.SampleNum)
	}
	return nil
}

// Close flushes and closes the rows file.
func (w *DirWriter) Close() error {
	return w.rowFile.Close()
}

// ReadRows decodes every row previously written to dir's rows.gob, in
// write order. Decoding stops at the first row that fails to decode.
func ReadRows(dir string) ([]Row, error) {
	f, err := os.Open(filepath.Join(dir, "rows.gob"))
	if err != nil {
		return nil, errors.Wrap(err, "opening rows file")
	}
	defer f.Close()

	dec := gob.NewDecoder(f)
	var rows []Row
	for {
		var row Row
		if err := dec.Decode(&row); err != nil {
			break
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadMetadata decodes dir's metadata.gob.
func ReadMetadata(dir string) (Metadata, error) {
	f, err := os.Open(filepath.Join(dir, "metadata.gob"))
	if err != nil {
		return Metadata{}, errors.Wrap(err, "opening metadata file")
	}
	defer f.Close()

	var meta Metadata
	if err := gob.NewDecoder(f).Decode(&meta); err != nil {
		return Metadata{}, errors.Wrap(err, "decoding metadata")
	}
	return meta, nil
}
