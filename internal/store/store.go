package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrCorrupt means a document file exists but does not parse as JSON.
// The bot never silently reinitialises a corrupt document, since that
// would throw away whatever the operator could still recover by hand
var ErrCorrupt = errors.New("document corrupt")

// Document is a JSON file holding one value of type T. All mutations
// go through Update, which serialises read-modify-write cycles under a
// per-document mutex, so two commands racing on the same file cannot
// lose an update
type Document[T any] struct {
	filename   string
	defaultFun func() T
	mutex      sync.Mutex
}

func NewDocument[T any](filename string, defaultFun func() T) *Document[T] {
	return &Document[T]{filename: filename, defaultFun: defaultFun}
}

// Filename returns the path of the backing file
func (doc *Document[T]) Filename() string {
	return doc.filename
}

// Load reads the document from disk. A missing file is created with
// the default value and that value returned
func (doc *Document[T]) Load() (T, error) {
	doc.mutex.Lock()
	defer doc.mutex.Unlock()
	return doc.load()
}

// Save overwrites the document on disk
func (doc *Document[T]) Save(value T) error {
	doc.mutex.Lock()
	defer doc.mutex.Unlock()
	return doc.save(value)
}

// Update applies a read-modify-write cycle atomically with respect to
// other Update/Load/Save calls on this document. If fun returns an
// error, nothing is written
func (doc *Document[T]) Update(fun func(T) (T, error)) error {
	doc.mutex.Lock()
	defer doc.mutex.Unlock()

	value, err := doc.load()
	if err != nil {
		return err
	}
	value, err = fun(value)
	if err != nil {
		return err
	}
	return doc.save(value)
}

// Bytes returns the current pretty-printed content of the document,
// as it would be pushed to the remote mirror
func (doc *Document[T]) Bytes() ([]byte, error) {
	value, err := doc.Load()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(value, "", "  ")
}

func (doc *Document[T]) load() (T, error) {
	var value T

	data, err := os.ReadFile(doc.filename)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Msg(fmt.Sprintf("Document %s does not exist, creating it with the default value", doc.filename))
		value = doc.defaultFun()
		return value, doc.save(value)
	}
	if err != nil {
		return value, fmt.Errorf("could not read document %s: %w", doc.filename, err)
	}

	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("%w: %s: %v", ErrCorrupt, doc.filename, err)
	}
	return value, nil
}

func (doc *Document[T]) save(value T) error {

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode document %s: %w", doc.filename, err)
	}
	data = append(data, '\n')

	// Write to a temporary file and rename, so a crash mid-write
	// cannot destroy the previous good copy
	dir := filepath.Dir(doc.filename)
	tmp, err := os.CreateTemp(dir, filepath.Base(doc.filename)+".tmp*")
	if err != nil {
		return fmt.Errorf("could not create temporary file for %s: %w", doc.filename, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write document %s: %w", doc.filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write document %s: %w", doc.filename, err)
	}
	if err := os.Rename(tmp.Name(), doc.filename); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not replace document %s: %w", doc.filename, err)
	}
	return nil
}
