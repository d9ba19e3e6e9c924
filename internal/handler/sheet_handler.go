package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sheetkit/gridengine/internal/logger"
	"github.com/sheetkit/gridengine/internal/service"
	"github.com/sheetkit/gridengine/internal/service/serviceutils"
	"github.com/sheetkit/gridengine/pkg/address"
	"github.com/sheetkit/gridengine/pkg/grid"
)

type SheetHandler struct {
	svc *service.SheetService
}

func NewSheetHandler(svc *service.SheetService) *SheetHandler {
	return &SheetHandler{svc: svc}
}

func (h *SheetHandler) CreateHandler(c echo.Context) error {
	var req createSheetRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if req.Rows == 0 {
		req.Rows = grid.DefaultRows
	}
	if req.Cols == 0 {
		req.Cols = grid.DefaultCols
	}

	id, err := h.svc.CreateSheet(c.Request().Context(), req.Rows, req.Cols)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Failed to create sheet", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Sheet created successfully",
		createSheetResponse{ID: id, Rows: req.Rows, Cols: req.Cols})
}

func (h *SheetHandler) GetHandler(c echo.Context) error {
	snap, err := h.svc.Snapshot(c.Param("id"))
	if err != nil {
		return h.notFoundOrError(c, err, "Failed to get sheet")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Sheet retrieved successfully",
		toSheetResponse(c.Param("id"), snap))
}

func (h *SheetHandler) DeleteHandler(c echo.Context) error {
	h.svc.DropSheet(c.Param("id"))
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Sheet deleted successfully", nil)
}

func (h *SheetHandler) GetCellHandler(c echo.Context) error {
	row, col, ok := address.ParseCell(c.Param("address"))
	if !ok {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid cell address", nil)
	}
	value, err := h.svc.Value(c.Param("id"), row, col)
	if err != nil {
		return h.notFoundOrError(c, err, "Failed to get cell")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Cell retrieved successfully",
		cellValueResponse{Address: address.CellName(row, col), Value: value})
}

func (h *SheetHandler) SetCellHandler(c echo.Context) error {
	row, col, ok := address.ParseCell(c.Param("address"))
	if !ok {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid cell address", nil)
	}
	var req cellValueRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.svc.SetValue(c.Param("id"), row, col, req.Value); err != nil {
		return h.notFoundOrError(c, err, "Failed to set cell")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Cell updated successfully", nil)
}

func (h *SheetHandler) InsertRowHandler(c echo.Context) error {
	if err := h.svc.InsertRow(c.Param("id")); err != nil {
		return h.notFoundOrError(c, err, "Failed to insert row")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Row inserted successfully", nil)
}

func (h *SheetHandler) InsertColumnHandler(c echo.Context) error {
	if err := h.svc.InsertColumn(c.Param("id")); err != nil {
		return h.notFoundOrError(c, err, "Failed to insert column")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Column inserted successfully", nil)
}

func (h *SheetHandler) RemoveRowHandler(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid row index", err)
	}
	if err := h.svc.RemoveRow(c.Param("id"), index); err != nil {
		return h.notFoundOrError(c, err, "Failed to remove row")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Row removed successfully", nil)
}

func (h *SheetHandler) RemoveColumnHandler(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid column index", err)
	}
	if err := h.svc.RemoveColumn(c.Param("id"), index); err != nil {
		return h.notFoundOrError(c, err, "Failed to remove column")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Column removed successfully", nil)
}

func (h *SheetHandler) SetDefaultStyleHandler(c echo.Context) error {
	var req styleRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.svc.SetDefaultStyle(c.Param("id"), grid.Style(req.Style)); err != nil {
		return h.notFoundOrError(c, err, "Failed to set default style")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Default style updated successfully", nil)
}

func (h *SheetHandler) SetRowStyleHandler(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid row index", err)
	}
	var req styleRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.svc.SetRowStyle(c.Param("id"), index, grid.Style(req.Style)); err != nil {
		return h.notFoundOrError(c, err, "Failed to set row style")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Row style updated successfully", nil)
}

func (h *SheetHandler) SetColumnStyleHandler(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid column index", err)
	}
	var req styleRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.svc.SetColumnStyle(c.Param("id"), index, grid.Style(req.Style)); err != nil {
		return h.notFoundOrError(c, err, "Failed to set column style")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Column style updated successfully", nil)
}

func (h *SheetHandler) SetCellStyleHandler(c echo.Context) error {
	row, col, ok := address.ParseCell(c.Param("address"))
	if !ok {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid cell address", nil)
	}
	var req styleRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.svc.SetCellStyle(c.Param("id"), row, col, grid.Style(req.Style)); err != nil {
		return h.notFoundOrError(c, err, "Failed to set cell style")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Cell style updated successfully", nil)
}

func (h *SheetHandler) EffectiveStyleHandler(c echo.Context) error {
	row, col, ok := address.ParseCell(c.Param("address"))
	if !ok {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid cell address", nil)
	}
	style, err := h.svc.EffectiveStyle(c.Param("id"), row, col)
	if err != nil {
		return h.notFoundOrError(c, err, "Failed to resolve style")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Style resolved successfully",
		styleResponse{Style: style})
}

func (h *SheetHandler) AddMergesHandler(c echo.Context) error {
	var req mergeRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	snap, err := h.svc.Snapshot(c.Param("id"))
	if err != nil {
		return h.notFoundOrError(c, err, "Failed to add merges")
	}
	ranges := grid.ParseRanges(req.Ranges, snap.Rows, snap.Cols)
	if err := h.svc.AddMerges(c.Param("id"), ranges); err != nil {
		return h.notFoundOrError(c, err, "Failed to add merges")
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Merges added successfully", nil)
}

func (h *SheetHandler) ExportHandler(c echo.Context) error {
	doc, err := h.svc.ExportJSON(c.Param("id"))
	if err != nil {
		return h.notFoundOrError(c, err, "Failed to export sheet")
	}
	return c.JSON(http.StatusOK, doc)
}

// ImportHandler replaces the sheet's model from an interchange payload.
// The import is atomic: on any parse or conversion failure the prior
// model is left untouched and the failure is reported to the caller.
func (h *SheetHandler) ImportHandler(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Failed to read request body", err)
	}
	if err := h.svc.ImportJSON(c.Request().Context(), c.Param("id"), payload); err != nil {
		if err == service.ErrSheetNotFound {
			return serviceutils.ResponseError(c, http.StatusNotFound, "Sheet not found", err)
		}
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Failed to import sheet", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Sheet imported successfully", nil)
}

// DownloadHandler streams the sheet as an xlsx workbook, falling back to
// the values-only CSV writer when the workbook writer signals failure.
func (h *SheetHandler) DownloadHandler(c echo.Context) error {
	id := c.Param("id")

	var buf bytes.Buffer
	if err := h.svc.WriteXLSX(id, &buf); err != nil {
		if err == service.ErrSheetNotFound {
			return serviceutils.ResponseError(c, http.StatusNotFound, "Sheet not found", err)
		}
		logger.WarnLog(c.Request().Context(), "xlsx writer unavailable for sheet %s, falling back to csv: %v", id, err)

		buf.Reset()
		if csvErr := h.svc.WriteCSV(id, &buf); csvErr != nil {
			return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to export file", csvErr)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.csv", id))
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.xlsx", id))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *SheetHandler) notFoundOrError(c echo.Context, err error, msg string) error {
	if err == service.ErrSheetNotFound {
		return serviceutils.ResponseError(c, http.StatusNotFound, "Sheet not found", err)
	}
	return serviceutils.ResponseError(c, http.StatusInternalServerError, msg, err)
}
