package editor

import "strings"

// seekStepSeconds is how far the arrow keys move the playhead.
const seekStepSeconds = 1.0

// HandleKey dispatches a keyboard event. Space toggles play/pause,
// delete removes the selected clip, and the horizontal arrows seek the
// playhead one second either way. Unbound keys report false.
func (s *Session) HandleKey(key string) bool {
	switch strings.ToLower(key) {
	case "space", " ":
		s.TogglePlayback()
	case "delete", "backspace":
		s.mu.Lock()
		id := s.model.SelectedClipID()
		s.mu.Unlock()
		if id != "" {
			s.DeleteClip(id)
		}
	case "arrowleft":
		s.SeekBy(-seekStepSeconds)
	case "arrowright":
		s.SeekBy(seekStepSeconds)
	default:
		return false
	}
	return true
}
