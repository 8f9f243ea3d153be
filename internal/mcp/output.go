// ABOUTME: Wire shapes returned by MCP tools and resources
// ABOUTME: Flattens optional viewpoint fields into nullable JSON properties

package mcp

import (
	"encoding/json"
	"time"

	"github.com/harper/vantage/internal/history"
	"github.com/harper/vantage/internal/models"
	"github.com/harper/vantage/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ViewpointOutput is a viewpoint with absent fields omitted.
type ViewpointOutput struct {
	Name      *string  `json:"name,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Heading   *float64 `json:"heading,omitempty"`
	Pitch     *float64 `json:"pitch,omitempty"`
	Range     *float64 `json:"range,omitempty"`
}

func toViewpointOutput(vp models.Viewpoint) ViewpointOutput {
	out := ViewpointOutput{
		Name:    vp.Name.Ptr(),
		Heading: vp.Heading.Ptr(),
		Pitch:   vp.Pitch.Ptr(),
		Range:   vp.Range.Ptr(),
	}
	if fp, ok := vp.Focal.Get(); ok {
		out.Longitude = &fp.Lon
		out.Latitude = &fp.Lat
		out.Altitude = &fp.Alt
	}
	return out
}

// StateOutput reports what navigation is possible.
type StateOutput struct {
	CanGoBack    bool `json:"can_go_back"`
	CanGoForward bool `json:"can_go_forward"`
	Count        int  `json:"count"`
}

func toStateOutput(st session.State) StateOutput {
	return StateOutput{CanGoBack: st.CanGoBack, CanGoForward: st.CanGoForward, Count: st.Count}
}

// MoveOutput is returned by every tool that moves the camera.
type MoveOutput struct {
	Current ViewpointOutput `json:"current"`
	State   StateOutput     `json:"state"`
}

// HistoryItemOutput is one row of the history listing.
type HistoryItemOutput struct {
	Index       int             `json:"index"`
	IsCurrent   bool            `json:"is_current"`
	DisplayName string          `json:"display_name"`
	Viewpoint   ViewpointOutput `json:"viewpoint"`
}

// HistoryOutput is the whole listing, oldest first.
type HistoryOutput struct {
	Items []HistoryItemOutput `json:"items"`
	State StateOutput         `json:"state"`
}

func toHistoryOutput(items []history.HistoryItem, st session.State) HistoryOutput {
	out := HistoryOutput{
		Items: make([]HistoryItemOutput, len(items)),
		State: toStateOutput(st),
	}
	for i, item := range items {
		out.Items[i] = HistoryItemOutput{
			Index:       item.Index,
			IsCurrent:   item.IsCurrent,
			DisplayName: item.DisplayName,
			Viewpoint:   toViewpointOutput(item.Viewpoint),
		}
	}
	return out
}

// PlaceOutput is a saved place.
type PlaceOutput struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Viewpoint ViewpointOutput `json:"viewpoint"`
	CreatedAt time.Time       `json:"created_at"`
}

func toPlaceOutput(p *models.Place) PlaceOutput {
	return PlaceOutput{
		ID:        p.ID.String(),
		Name:      p.Name,
		Viewpoint: toViewpointOutput(p.Viewpoint),
		CreatedAt: p.CreatedAt,
	}
}

// ListPlacesOutput defines output for list_places tool.
type ListPlacesOutput struct {
	Places []PlaceOutput `json:"places"`
	Count  int           `json:"count"`
}

// MessageOutput acknowledges a tool call that returns no data.
type MessageOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func textResult(output any) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}
