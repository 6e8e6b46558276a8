// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Cutline editor tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rosenlund/cutline/internal/editor"
	"github.com/rosenlund/cutline/internal/medialib"
)

// Server wraps the MCP server with Cutline tools.
type Server struct {
	mcp     *server.MCPServer
	session *editor.Session
	lib     *medialib.Library
}

// New creates a new MCP server with all Cutline tools registered.
func New(session *editor.Session, lib *medialib.Library) *Server {
	s := &Server{session: session, lib: lib}

	s.mcp = server.NewMCPServer(
		"Cutline",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_media",
		mcp.WithDescription("List imported media items with their ids, kinds, and resolved durations."),
		mcp.WithString("kind", mcp.Description("Optional kind filter: video, audio, or image")),
	), s.listMedia)

	s.mcp.AddTool(mcp.NewTool("import_media",
		mcp.WithDescription("Import a file already inside the media directory into the library."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path relative to the media directory")),
	), s.importMedia)

	s.mcp.AddTool(mcp.NewTool("get_timeline",
		mcp.WithDescription("Read the full timeline: tracks, clips, playhead, total duration, and selection. "+
			"The JSON shape is documented in the cutline://timeline-shape resource."),
	), s.getTimeline)

	s.mcp.AddTool(mcp.NewTool("add_clip",
		mcp.WithDescription("Place a media item as a clip on a track. The track index must reference "+
			"an existing track; out-of-range indexes are rejected."),
		mcp.WithString("media_id", mcp.Required(), mcp.Description("Id of the media item to place")),
		mcp.WithNumber("track_index", mcp.Required(), mcp.Description("Zero-based target track index")),
		mcp.WithNumber("start_time", mcp.Description("Start position in seconds (default 0, clamped to >= 0)")),
	), s.addClip)

	s.mcp.AddTool(mcp.NewTool("move_clip",
		mcp.WithDescription("Move a clip to a new start time on its track. Negative times clamp to 0."),
		mcp.WithString("clip_id", mcp.Required(), mcp.Description("Id of the clip to move")),
		mcp.WithNumber("start_time", mcp.Required(), mcp.Description("New start position in seconds")),
	), s.moveClip)

	s.mcp.AddTool(mcp.NewTool("delete_clip",
		mcp.WithDescription("Remove a clip from the timeline. Unknown ids are ignored."),
		mcp.WithString("clip_id", mcp.Required(), mcp.Description("Id of the clip to delete")),
	), s.deleteClip)

	s.mcp.AddTool(mcp.NewTool("seek",
		mcp.WithDescription("Move the playhead to an absolute time, clamped to the timeline bounds."),
		mcp.WithNumber("time", mcp.Required(), mcp.Description("Target time in seconds")),
	), s.seek)

	// Resource: timeline JSON shape.
	s.mcp.AddResource(
		mcp.NewResource("cutline://timeline-shape", "Timeline JSON Shape",
			mcp.WithResourceDescription("The JSON structure returned by get_timeline and accepted by the clip tools."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTimelineShapeResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listMedia(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := req.GetString("kind", "")
	items, err := s.lib.List(kind)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) importMedia(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	item, _, err := s.lib.ImportPath(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("import failed: %v", err)), nil
	}
	out, _ := json.MarshalIndent(item, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.session.Snapshot(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addClip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mediaID, err := req.RequireString("media_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	trackIndex, err := req.RequireInt("track_index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	startTime := req.GetFloat("start_time", 0)

	clip, err := s.session.AddClip(mediaID, trackIndex, startTime)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(clip, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) moveClip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clipID, err := req.RequireString("clip_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	startTime, err := req.RequireFloat("start_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	clip, err := s.session.MoveClip(clipID, startTime)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(clip, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) deleteClip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clipID, err := req.RequireString("clip_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.session.DeleteClip(clipID)
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", clipID)), nil
}

func (s *Server) seek(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := req.RequireFloat("time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	applied := s.session.Seek(target)
	return mcp.NewToolResultText(fmt.Sprintf("playhead at %.3f", applied)), nil
}

func (s *Server) readTimelineShapeResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "cutline://timeline-shape",
			MIMEType: "text/markdown",
			Text:     TimelineShapeContract,
		},
	}, nil
}
