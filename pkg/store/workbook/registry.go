package workbook

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/de-tools/sheet-atlas/pkg/models/domain"
)

// Decoder turns an encoded workbook into a cell grid.
type Decoder interface {
	Decode(ctx context.Context, r io.Reader) (domain.Grid, error)
}

// Registry manages decoders by file extension
type Registry interface {
	// Register adds a decoder for an extension such as ".xlsx"
	Register(ext string, decoder Decoder) error
	// Lookup returns the decoder for the extension of location
	Lookup(location string) (Decoder, error)
	// ListFormats returns the registered extensions
	ListFormats() []string
}

type registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

func NewRegistry() Registry {
	return &registry{
		decoders: make(map[string]Decoder),
	}
}

// DefaultRegistry knows legacy .xls, the Open XML spreadsheet formats and CSV.
func DefaultRegistry(sheet string) Registry {
	r := NewRegistry()
	_ = r.Register(".xls", NewXLSDecoder(sheet))
	excel := NewExcelDecoder(sheet)
	for _, ext := range []string{".xlsx", ".xlsm", ".xltx", ".xltm"} {
		_ = r.Register(ext, excel)
	}
	_ = r.Register(".csv", NewCSVDecoder())
	return r
}

func (r *registry) Register(ext string, decoder Decoder) error {
	if ext == "" {
		return fmt.Errorf("extension cannot be empty")
	}
	if decoder == nil {
		return fmt.Errorf("decoder cannot be nil")
	}
	ext = normalizeExt(ext)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.decoders[ext]; exists {
		return fmt.Errorf("format %q is already registered", ext)
	}

	r.decoders[ext] = decoder
	return nil
}

func (r *registry) Lookup(location string) (Decoder, error) {
	ext := normalizeExt(filepath.Ext(location))

	r.mu.RLock()
	decoder, exists := r.decoders[ext]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return decoder, nil
}

func (r *registry) ListFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.decoders))
	for ext := range r.decoders {
		formats = append(formats, ext)
	}
	sort.Strings(formats)
	return formats
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
