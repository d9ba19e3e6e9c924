package handler

import (
	"github.com/sheetkit/gridengine/pkg/grid"
)

type createSheetRequest struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

type createSheetResponse struct {
	ID   string `json:"id"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

type cellValueRequest struct {
	Value string `json:"value"`
}

type cellValueResponse struct {
	Address string `json:"address"`
	Value   string `json:"value"`
}

type styleRequest struct {
	Style map[string]string `json:"style"`
}

type styleResponse struct {
	Style map[string]string `json:"style,omitempty"`
}

type mergeRequest struct {
	// Ranges in "A1:B2" notation; malformed entries are skipped.
	Ranges []string `json:"ranges"`
}

type sheetResponse struct {
	ID     string       `json:"id"`
	Rows   int          `json:"rows"`
	Cols   int          `json:"cols"`
	Data   [][]string   `json:"data"`
	Merges []mergeRange `json:"merges,omitempty"`
}

type mergeRange struct {
	Range   string `json:"range"`
	RowSpan int    `json:"rowSpan"`
	ColSpan int    `json:"colSpan"`
}

func toSheetResponse(id string, snap grid.Snapshot) sheetResponse {
	resp := sheetResponse{
		ID:   id,
		Rows: snap.Rows,
		Cols: snap.Cols,
		Data: snap.Data,
	}
	for _, m := range snap.Merges {
		resp.Merges = append(resp.Merges, mergeRange{
			Range:   m.Label(),
			RowSpan: m.RowSpan(),
			ColSpan: m.ColSpan(),
		})
	}
	return resp
}
