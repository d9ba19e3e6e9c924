package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/sheetkit/gridengine/internal/config"
	"github.com/sheetkit/gridengine/internal/logger"
	"github.com/sheetkit/gridengine/pkg/grid"
	"github.com/sheetkit/gridengine/pkg/sheetjson"
	"github.com/sheetkit/gridengine/pkg/xlsxport"
)

// ErrSheetNotFound is returned for operations on unknown session IDs.
var ErrSheetNotFound = errors.New("service: sheet not found")

// SheetService owns the live grid models, one per widget session. Each
// session is guarded by its own mutex: the engine itself assumes a single
// writer, so the service serializes HTTP callers in front of it.
type SheetService struct {
	mu       sync.RWMutex
	sessions map[string]*session
	export   *config.ExportConfig
}

type session struct {
	mu    sync.Mutex
	model *grid.Model
}

// NewSheetService creates an empty session registry.
func NewSheetService(export *config.ExportConfig) *SheetService {
	return &SheetService{
		sessions: make(map[string]*session),
		export:   export,
	}
}

// CreateSheet registers a new rows×cols model and returns its session ID.
func (s *SheetService) CreateSheet(ctx context.Context, rows, cols int) (string, error) {
	model, err := grid.New(rows, cols)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{model: model}
	s.mu.Unlock()
	logger.InfoLog(ctx, "sheet %s created (%dx%d)", id, rows, cols)
	return id, nil
}

// DropSheet discards a session.
func (s *SheetService) DropSheet(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// withModel runs fn while holding the session lock.
func (s *SheetService) withModel(id string, fn func(m *grid.Model) error) error {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSheetNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.model)
}

// Snapshot returns an immutable copy of a session's model.
func (s *SheetService) Snapshot(id string) (grid.Snapshot, error) {
	var snap grid.Snapshot
	err := s.withModel(id, func(m *grid.Model) error {
		snap = m.Snapshot()
		return nil
	})
	return snap, err
}

// SetValue writes one cell's text; out-of-range writes are ignored by the
// model.
func (s *SheetService) SetValue(id string, row, col int, value string) error {
	return s.withModel(id, func(m *grid.Model) error {
		m.SetValue(row, col, value)
		return nil
	})
}

// Value reads one cell's text.
func (s *SheetService) Value(id string, row, col int) (string, error) {
	var v string
	err := s.withModel(id, func(m *grid.Model) error {
		v = m.Value(row, col)
		return nil
	})
	return v, err
}

// InsertRow appends a row at the bottom.
func (s *SheetService) InsertRow(id string) error {
	return s.withModel(id, func(m *grid.Model) error {
		m.InsertRow()
		return nil
	})
}

// InsertColumn appends a column at the right edge.
func (s *SheetService) InsertColumn(id string) error {
	return s.withModel(id, func(m *grid.Model) error {
		m.InsertColumn()
		return nil
	})
}

// RemoveRow removes a row; a no-op on invalid index or a single-row grid.
func (s *SheetService) RemoveRow(id string, index int) error {
	return s.withModel(id, func(m *grid.Model) error {
		m.RemoveRow(index)
		return nil
	})
}

// RemoveColumn removes a column under the same rules as RemoveRow.
func (s *SheetService) RemoveColumn(id string, index int) error {
	return s.withModel(id, func(m *grid.Model) error {
		m.RemoveColumn(index)
		return nil
	})
}

// SetCellStyle stores the per-cell style layer.
func (s *SheetService) SetCellStyle(id string, row, col int, style grid.Style) error {
	return s.withModel(id, func(m *grid.Model) error {
		m.SetCellStyle(row, col, style)
		return nil
	})
}

// SetRowStyle stores the per-row style layer (and propagates it into the
// row's cells, the widget's documented behavior).
func (s *SheetService) SetRowStyle(id string, row int, style grid.Style) error {
	return s.withModel(id, func(m *grid.Model) error {
		m.SetRowStyle(row, style)
		return nil
	})
}

// SetColumnStyle stores the per-column style layer.
func (s *SheetService) SetColumnStyle(id string, col int, style grid.Style) error {
	return s.withModel(id, func(m *grid.Model) error {
		m.SetColumnStyle(col, style)
		return nil
	})
}

// SetDefaultStyle stores the grid-wide default layer.
func (s *SheetService) SetDefaultStyle(id string, style grid.Style) error {
	return s.withModel(id, func(m *grid.Model) error {
		m.SetDefaultStyle(style)
		return nil
	})
}

// EffectiveStyle resolves the full cascade for one cell.
func (s *SheetService) EffectiveStyle(id string, row, col int) (grid.Style, error) {
	var st grid.Style
	err := s.withModel(id, func(m *grid.Model) error {
		st = m.EffectiveStyle(row, col)
		return nil
	})
	return st, err
}

// AddMerges normalizes and appends merge regions.
func (s *SheetService) AddMerges(id string, ranges []grid.MergeRange) error {
	return s.withModel(id, func(m *grid.Model) error {
		m.SetMerges(append(m.Merges(), ranges...))
		return nil
	})
}

// ExportJSON serializes a session into the interchange document.
func (s *SheetService) ExportJSON(id string) (*sheetjson.Document, error) {
	snap, err := s.Snapshot(id)
	if err != nil {
		return nil, err
	}
	return sheetjson.Export(snap), nil
}

// ImportJSON replaces a session's model with one parsed from an
// interchange payload. The import is atomic: the payload is parsed and
// converted in full before the old model is swapped out, so a malformed
// document leaves the session untouched.
func (s *SheetService) ImportJSON(ctx context.Context, id string, payload []byte) error {
	doc, err := sheetjson.Parse(payload)
	if err != nil {
		return err
	}
	model, err := sheetjson.Import(doc)
	if err != nil {
		return err
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSheetNotFound
	}
	sess.mu.Lock()
	sess.model = model
	sess.mu.Unlock()
	logger.InfoLog(ctx, "sheet %s imported (%dx%d)", id, model.Rows(), model.Cols())
	return nil
}

// WriteXLSX renders a session as an xlsx workbook. A returned error is
// the unavailable-signal; callers fall back to WriteCSV.
func (s *SheetService) WriteXLSX(id string, out io.Writer) error {
	snap, err := s.Snapshot(id)
	if err != nil {
		return err
	}
	w := xlsxport.NewWriter(xlsxport.Options{
		SheetName:            s.export.SheetName,
		DefaultColumnWidthPx: s.export.ColumnWidthPx,
		DefaultRowHeightPx:   s.export.RowHeightPx,
	})
	return w.Write(snap, out)
}

// WriteCSV renders a session as the values-only CSV fallback.
func (s *SheetService) WriteCSV(id string, out io.Writer) error {
	snap, err := s.Snapshot(id)
	if err != nil {
		return err
	}
	return xlsxport.WriteCSV(snap, out)
}
