// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Provides camera navigation, history, and saved place operations for AI agents

package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/vantage/internal/models"
	"github.com/harper/vantage/internal/session"
	"github.com/harper/vantage/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerNavigateTool()
	s.registerObserveTool()
	s.registerGoBackTool()
	s.registerGoForwardTool()
	s.registerJumpToHistoryTool()
	s.registerGetHistoryTool()
	s.registerClearHistoryTool()
	s.registerSavePlaceTool()
	s.registerGotoPlaceTool()
	s.registerListPlacesTool()
	s.registerRemovePlaceTool()
}

// ViewpointInput describes a camera pose. Longitude and latitude go together.
type ViewpointInput struct {
	Name      *string  `json:"name,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Heading   *float64 `json:"heading,omitempty"`
	Pitch     *float64 `json:"pitch,omitempty"`
	Range     *float64 `json:"range,omitempty"`
}

func (in ViewpointInput) viewpoint() (models.Viewpoint, error) {
	vp := models.Viewpoint{
		Name:    models.FromPtr(in.Name),
		Heading: models.FromPtr(in.Heading),
		Pitch:   models.FromPtr(in.Pitch),
		Range:   models.FromPtr(in.Range),
	}
	switch {
	case in.Longitude != nil && in.Latitude != nil:
		fp := models.FocalPoint{Lon: *in.Longitude, Lat: *in.Latitude}
		if in.Altitude != nil {
			fp.Alt = *in.Altitude
		}
		vp.Focal = models.Some(fp)
	case in.Longitude != nil || in.Latitude != nil:
		return models.Viewpoint{}, fmt.Errorf("longitude and latitude must be given together")
	}
	if err := vp.Validate(); err != nil {
		return models.Viewpoint{}, err
	}
	return vp, nil
}

func viewpointSchema(extraRequired ...string) map[string]interface{} {
	number := func(desc string) map[string]interface{} {
		return map[string]interface{}{"type": "number", "description": desc}
	}
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Optional viewpoint name shown in the history",
			},
			"longitude": number("Focal point longitude (-180 to 180)"),
			"latitude":  number("Focal point latitude (-90 to 90)"),
			"altitude":  number("Focal point altitude in meters"),
			"heading":   number("Camera heading in degrees"),
			"pitch":     number("Camera pitch in degrees (negative looks down)"),
			"range":     number("Distance from camera to focal point in meters"),
		},
	}
	if len(extraRequired) > 0 {
		schema["required"] = extraRequired
	}
	return schema
}

func (s *Server) moveOutput() MoveOutput {
	current, _ := s.session.Current()
	return MoveOutput{
		Current: toViewpointOutput(current),
		State:   toStateOutput(s.session.State()),
	}
}

func (s *Server) registerNavigateTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "navigate_to",
		Description: "Fly the camera to a viewpoint. The viewpoint being left is recorded in the back history and the forward history is discarded.",
		InputSchema: viewpointSchema("longitude", "latitude"),
	}, s.handleNavigate)
}

func (s *Server) handleNavigate(_ context.Context, req *mcp.CallToolRequest, input ViewpointInput) (*mcp.CallToolResult, MoveOutput, error) {
	vp, err := input.viewpoint()
	if err != nil {
		return nil, MoveOutput{}, err
	}
	if err := s.session.Navigate(vp); err != nil {
		return nil, MoveOutput{}, fmt.Errorf("failed to navigate: %w", err)
	}
	output := s.moveOutput()
	return textResult(output), output, nil
}

func (s *Server) registerObserveTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "observe_camera",
		Description: "Report that the user moved the camera. The previous resting viewpoint is recorded once the camera has been still for the settle delay.",
		InputSchema: viewpointSchema(),
	}, s.handleObserve)
}

func (s *Server) handleObserve(_ context.Context, req *mcp.CallToolRequest, input ViewpointInput) (*mcp.CallToolResult, MoveOutput, error) {
	vp, err := input.viewpoint()
	if err != nil {
		return nil, MoveOutput{}, err
	}
	if err := s.session.Observe(vp); err != nil {
		return nil, MoveOutput{}, fmt.Errorf("failed to observe camera: %w", err)
	}
	output := s.moveOutput()
	return textResult(output), output, nil
}

// EmptyInput is used by tools that take no arguments.
type EmptyInput struct{}

var emptySchema = map[string]interface{}{"type": "object"}

func (s *Server) registerGoBackTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "go_back",
		Description: "Return to the previous viewpoint in the navigation history.",
		InputSchema: emptySchema,
	}, s.handleGoBack)
}

func (s *Server) handleGoBack(_ context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, MoveOutput, error) {
	if _, err := s.session.Back(); err != nil {
		return nil, MoveOutput{}, err
	}
	output := s.moveOutput()
	return textResult(output), output, nil
}

func (s *Server) registerGoForwardTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "go_forward",
		Description: "Advance to the next viewpoint after going back.",
		InputSchema: emptySchema,
	}, s.handleGoForward)
}

func (s *Server) handleGoForward(_ context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, MoveOutput, error) {
	if _, err := s.session.Forward(); err != nil {
		return nil, MoveOutput{}, err
	}
	output := s.moveOutput()
	return textResult(output), output, nil
}

// JumpInput defines input for jump_to_history tool.
type JumpInput struct {
	Index int `json:"index"`
}

// JumpOutput reports a history jump.
type JumpOutput struct {
	Current         ViewpointOutput `json:"current"`
	State           StateOutput     `json:"state"`
	AlreadyRecorded bool            `json:"already_recorded"`
}

func (s *Server) registerJumpToHistoryTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "jump_to_history",
		Description: "Jump to an entry of get_history by its index. Jumping to the current entry is rejected.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Index from get_history",
				},
			},
			"required": []string{"index"},
		},
	}, s.handleJumpToHistory)
}

func (s *Server) handleJumpToHistory(_ context.Context, req *mcp.CallToolRequest, input JumpInput) (*mcp.CallToolResult, JumpOutput, error) {
	_, recorded, err := s.session.JumpTo(input.Index)
	if err != nil {
		return nil, JumpOutput{}, err
	}
	move := s.moveOutput()
	output := JumpOutput{Current: move.Current, State: move.State, AlreadyRecorded: recorded}
	return textResult(output), output, nil
}

func (s *Server) registerGetHistoryTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_history",
		Description: "List the navigation history oldest first, with the current viewpoint marked.",
		InputSchema: emptySchema,
	}, s.handleGetHistory)
}

func (s *Server) handleGetHistory(_ context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, HistoryOutput, error) {
	output := toHistoryOutput(s.session.History(), s.session.State())
	return textResult(output), output, nil
}

func (s *Server) registerClearHistoryTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "clear_history",
		Description: "Forget all back and forward history. The camera stays where it is.",
		InputSchema: emptySchema,
	}, s.handleClearHistory)
}

func (s *Server) handleClearHistory(_ context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, MessageOutput, error) {
	s.session.Clear()
	output := MessageOutput{Success: true, Message: "History cleared"}
	return textResult(output), output, nil
}

// PlaceNameInput identifies a saved place.
type PlaceNameInput struct {
	Name string `json:"name"`
}

var placeNameSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"name": map[string]interface{}{
			"type":        "string",
			"description": "Name of the saved place",
		},
	},
	"required": []string{"name"},
}

func (s *Server) registerSavePlaceTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "save_place",
		Description: "Save the current viewpoint as a named place.",
		InputSchema: placeNameSchema,
	}, s.handleSavePlace)
}

func (s *Server) handleSavePlace(_ context.Context, req *mcp.CallToolRequest, input PlaceNameInput) (*mcp.CallToolResult, PlaceOutput, error) {
	if err := models.ValidateName(input.Name); err != nil {
		return nil, PlaceOutput{}, err
	}
	current, ok := s.session.Current()
	if !ok {
		return nil, PlaceOutput{}, session.ErrNoCurrent
	}

	place := models.NewPlace(input.Name, current)
	if err := s.places.CreatePlace(place); err != nil {
		return nil, PlaceOutput{}, fmt.Errorf("failed to save place: %w", err)
	}
	output := toPlaceOutput(place)
	return textResult(output), output, nil
}

func (s *Server) registerGotoPlaceTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "goto_place",
		Description: "Fly the camera to a saved place, recording the viewpoint being left.",
		InputSchema: placeNameSchema,
	}, s.handleGotoPlace)
}

func (s *Server) handleGotoPlace(_ context.Context, req *mcp.CallToolRequest, input PlaceNameInput) (*mcp.CallToolResult, MoveOutput, error) {
	place, err := s.lookupPlace(input.Name)
	if err != nil {
		return nil, MoveOutput{}, err
	}
	if err := s.session.Navigate(place.Viewpoint); err != nil {
		return nil, MoveOutput{}, fmt.Errorf("failed to navigate: %w", err)
	}
	output := s.moveOutput()
	return textResult(output), output, nil
}

func (s *Server) registerListPlacesTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_places",
		Description: "List all saved places sorted by name.",
		InputSchema: emptySchema,
	}, s.handleListPlaces)
}

func (s *Server) handleListPlaces(_ context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, ListPlacesOutput, error) {
	output, err := s.listPlaces()
	if err != nil {
		return nil, ListPlacesOutput{}, err
	}
	return textResult(output), output, nil
}

func (s *Server) listPlaces() (ListPlacesOutput, error) {
	places, err := s.places.ListPlaces()
	if err != nil {
		return ListPlacesOutput{}, fmt.Errorf("failed to list places: %w", err)
	}
	output := ListPlacesOutput{
		Places: make([]PlaceOutput, len(places)),
		Count:  len(places),
	}
	for i, p := range places {
		output.Places[i] = toPlaceOutput(p)
	}
	return output, nil
}

func (s *Server) registerRemovePlaceTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "remove_place",
		Description: "Delete a saved place. The navigation history is not affected.",
		InputSchema: placeNameSchema,
	}, s.handleRemovePlace)
}

func (s *Server) handleRemovePlace(_ context.Context, req *mcp.CallToolRequest, input PlaceNameInput) (*mcp.CallToolResult, MessageOutput, error) {
	place, err := s.lookupPlace(input.Name)
	if err != nil {
		return nil, MessageOutput{}, err
	}
	if err := s.places.DeletePlace(place.ID); err != nil {
		return nil, MessageOutput{}, fmt.Errorf("failed to remove place: %w", err)
	}
	output := MessageOutput{
		Success: true,
		Message: fmt.Sprintf("Removed place '%s'", place.Name),
	}
	return textResult(output), output, nil
}

func (s *Server) lookupPlace(name string) (*models.Place, error) {
	if err := models.ValidateName(name); err != nil {
		return nil, err
	}
	place, err := s.places.GetPlaceByName(name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("place '%s' not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return place, nil
}
