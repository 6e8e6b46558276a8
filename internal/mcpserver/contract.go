package mcpserver

// TimelineShapeContract describes the JSON structure returned by
// get_timeline and the identifiers the clip tools operate on.
const TimelineShapeContract = `# Cutline Timeline Shape

The get_timeline tool returns the full editor state as JSON.

## Structure

` + "```" + `json
{
  "tracks": [
    {"name": "Video 1", "kind": "video"},
    {"name": "Video 2", "kind": "video"},
    {"name": "Audio 1", "kind": "audio"}
  ],
  "clips": [
    {
      "id": "uuid",
      "media_id": "uuid",
      "track_index": 0,
      "start_time": 2.0,
      "duration_seconds": 5.0,
      "name": "trailer.mp4",
      "kind": "video"
    }
  ],
  "current_time": 0,
  "total_duration": 7.0,
  "selected_clip_id": "uuid"
}
` + "```" + `

## Rules

1. **Tracks are fixed.** Their position in the list is the ` + "`" + `track_index` + "`" + `
   clips refer to; tracks cannot be added or removed.
2. **` + "`" + `track_index` + "`" + ` must be in range** when adding a clip. Out-of-range
   indexes are rejected, never clamped.
3. **Clip durations are snapshots.** A clip copies the media item's duration at
   placement time; if the media duration resolves later, already-placed clips
   keep their original value. Unresolved durations fall back to the configured
   default (5 seconds).
4. **Start times are clamped to zero.** Moving a clip to a negative time places
   it at 0. Overlapping clips on the same track are allowed.
5. **` + "`" + `total_duration` + "`" + ` is derived**: the maximum clip end time, recomputed
   on every mutation. The playhead (` + "`" + `current_time` + "`" + `) always stays within
   [0, total_duration].
6. **Times are seconds** as floating-point numbers.
`
