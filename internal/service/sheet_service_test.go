package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetkit/gridengine/internal/config"
	"github.com/sheetkit/gridengine/pkg/grid"
)

func newService() *SheetService {
	return NewSheetService(&config.ExportConfig{
		SheetName:     "Sheet1",
		ColumnWidthPx: 64,
		RowHeightPx:   20,
	})
}

func TestCreateAndSnapshot(t *testing.T) {
	svc := newService()
	id, err := svc.CreateSheet(context.Background(), 3, 2)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snap, err := svc.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Rows)
	assert.Equal(t, 2, snap.Cols)
}

func TestCreateInvalidDimensions(t *testing.T) {
	svc := newService()
	_, err := svc.CreateSheet(context.Background(), -1, 2)
	assert.ErrorIs(t, err, grid.ErrInvalidDimension)
}

func TestUnknownSheet(t *testing.T) {
	svc := newService()
	_, err := svc.Snapshot("nope")
	assert.ErrorIs(t, err, ErrSheetNotFound)

	err = svc.SetValue("nope", 0, 0, "x")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestImportAtomicity(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	id, err := svc.CreateSheet(ctx, 2, 2)
	require.NoError(t, err)
	require.NoError(t, svc.SetValue(id, 0, 0, "keep me"))

	// outer document parse failure: prior model untouched
	err = svc.ImportJSON(ctx, id, []byte(`{not json`))
	require.Error(t, err)
	v, err := svc.Value(id, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "keep me", v)

	// no sheets: surfaced, prior model untouched
	err = svc.ImportJSON(ctx, id, []byte(`{"sheets": []}`))
	require.Error(t, err)
	v, _ = svc.Value(id, 0, 0)
	assert.Equal(t, "keep me", v)

	// a valid payload fully replaces the model
	err = svc.ImportJSON(ctx, id, []byte(`{"sheets": [{"name": "Sheet1", "rows": [{"index": 0, "cells": [{"index": 0, "value": "new"}]}]}]}`))
	require.NoError(t, err)
	v, _ = svc.Value(id, 0, 0)
	assert.Equal(t, "new", v)
}

func TestStructuralEditsThroughService(t *testing.T) {
	svc := newService()
	id, err := svc.CreateSheet(context.Background(), 2, 2)
	require.NoError(t, err)

	require.NoError(t, svc.InsertRow(id))
	require.NoError(t, svc.InsertColumn(id))
	snap, _ := svc.Snapshot(id)
	assert.Equal(t, 3, snap.Rows)
	assert.Equal(t, 3, snap.Cols)

	require.NoError(t, svc.RemoveRow(id, 0))
	require.NoError(t, svc.RemoveColumn(id, 2))
	snap, _ = svc.Snapshot(id)
	assert.Equal(t, 2, snap.Rows)
	assert.Equal(t, 2, snap.Cols)
}

func TestExportJSON(t *testing.T) {
	svc := newService()
	id, err := svc.CreateSheet(context.Background(), 2, 2)
	require.NoError(t, err)
	require.NoError(t, svc.SetValue(id, 0, 0, "hello"))

	doc, err := svc.ExportJSON(id)
	require.NoError(t, err)
	require.Len(t, doc.Sheets, 1)
	require.Len(t, doc.Sheets[0].Rows, 1)
	assert.Equal(t, "hello", doc.Sheets[0].Rows[0].Cells[0].Value)
}

func TestWriteCSVFallback(t *testing.T) {
	svc := newService()
	id, err := svc.CreateSheet(context.Background(), 2, 2)
	require.NoError(t, err)
	require.NoError(t, svc.SetValue(id, 0, 0, "a"))

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(id, &buf))
	assert.True(t, strings.Contains(buf.String(), "a,"))
}
