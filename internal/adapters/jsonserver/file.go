package jsonserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"book_my_hotel/internal/domain"
)

// FileSource reads hotels from a json-server database file ({"hotels": [...]}).
type FileSource struct{ path string }

func NewFileSource(path string) *FileSource { return &FileSource{path: path} }

func (f *FileSource) FetchHotels(ctx context.Context) ([]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	var db struct {
		Hotels []map[string]any `json:"hotels"`
	}
	if err := json.Unmarshal(b, &db); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return db.Hotels, nil
}

// FetchHotel picks one hotel out of the file by id; ids may be numbers or
// numeric strings.
func (f *FileSource) FetchHotel(ctx context.Context, id int64) (map[string]any, error) {
	hs, err := f.FetchHotels(ctx)
	if err != nil {
		return nil, err
	}
	want := strconv.FormatInt(id, 10)
	for _, h := range hs {
		if fmt.Sprint(h["id"]) == want {
			return h, nil
		}
	}
	return nil, fmt.Errorf("hotel %d in %s: %w", id, f.path, domain.ErrNotFound)
}
