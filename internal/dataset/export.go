package dataset

import (
	"bufio"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileName is the export file name of a dataset.
func FileName(ds Dataset) string {
	return "dataset-" + ds.Entity.ID + ".json"
}

// WriteFile exports a dataset as indented JSON into dir, replacing any previous export atomically.
func WriteFile(dir string, ds Dataset) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating export directory %s", dir)
	}

	path := filepath.Join(dir, FileName(ds))
	tmpPath := path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return "", errors.Wrap(err, "creating temp export file")
	}

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(ds); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return "", errors.Wrap(err, "encoding dataset")
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return "", errors.Wrap(err, "flushing export")
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return "", errors.Wrap(err, "closing export")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", errors.Wrap(err, "renaming export")
	}

	log.Debug().Str("entity", ds.Entity.ID).Str("path", path).Msg("Dataset exported")
	return path, nil
}

// ReadFile loads a dataset previously written by WriteFile.
func ReadFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, errors.Wrapf(err, "reading dataset %s", path)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}, errors.Wrapf(err, "decoding dataset %s", path)
	}
	return ds, nil
}
