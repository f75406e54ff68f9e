package service

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/saadjs/biolink/internal/model"
)

// Export writes the whole state as indented JSON. The output is for backups
// and other tools; nothing reads it back.
func Export(state model.AppState, w io.Writer) error {
	if state.Favorites == nil {
		state.Favorites = []model.FavoriteEntry{}
	}
	if state.Logs == nil {
		state.Logs = map[string]model.DailyLog{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

func ExportFileName(dateKey string) string {
	return fmt.Sprintf("biolink-export-%s.json", dateKey)
}
