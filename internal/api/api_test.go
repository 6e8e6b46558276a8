package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rosenlund/cutline/internal/editor"
	"github.com/rosenlund/cutline/internal/export"
	"github.com/rosenlund/cutline/internal/medialib"
	"github.com/rosenlund/cutline/internal/models"
	"github.com/rosenlund/cutline/internal/testutil"
	"github.com/rosenlund/cutline/internal/timeline"
)

// testEnv sets up a temp media dir, SQLite catalog, editor session, and
// router. authToken == "" means auth is disabled.
func testEnv(t *testing.T, authToken string) http.Handler {
	t.Helper()
	// The zero-second prober keeps durations unresolved, so clip
	// placement always sees the 5 s default.
	return testEnvWithProber(t, authToken, &testutil.StubProber{})
}

func testEnvWithProber(t *testing.T, authToken string, prober *testutil.StubProber) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := testutil.TestCatalog(t)
	_, store := testutil.TestMediaDir(t)
	lib := medialib.New(store, catalog, prober, logger, nil)

	model := timeline.NewModel([]models.Track{
		{Name: "Video 1", Kind: models.TrackVideo},
		{Name: "Video 2", Kind: models.TrackVideo},
		{Name: "Audio 1", Kind: models.TrackAudio},
	}, 5)
	geom := timeline.Geometry{PixelsPerSecond: 50, GutterWidth: 150}
	session := editor.NewSession(model, geom, lib, 100*time.Millisecond, logger, nil)
	t.Cleanup(session.Shutdown)

	_, outputs := testutil.TestMediaDir(t)
	exportSvc := export.NewService(&export.ManifestEncoder{Outputs: outputs}, logger, nil)

	return NewRouter(session, lib, exportSvc, authToken != "", authToken, nil)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}

// uploadMedia posts a multipart file and returns the created item.
func uploadMedia(t *testing.T, router http.Handler, filename string, content []byte) models.MediaItem {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}
	return decode[models.MediaItem](t, w)
}

func TestUploadListAndResolveMedia(t *testing.T) {
	router := testEnvWithProber(t, "", &testutil.StubProber{Seconds: 7.5})

	item := uploadMedia(t, router, "trailer.mp4", []byte("fake video bytes"))
	if item.Name != "trailer.mp4" || item.Kind != models.MediaVideo {
		t.Fatalf("uploaded item = %+v", item)
	}
	if item.DurationSeconds != 0 {
		t.Errorf("duration at upload = %v, want 0 until resolved", item.DurationSeconds)
	}

	w := doJSON(t, router, http.MethodGet, "/media", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	list := decode[struct {
		Items []models.MediaItem `json:"items"`
		Total int                `json:"total"`
	}](t, w)
	if list.Total != 1 || len(list.Items) != 1 {
		t.Fatalf("list = %+v", list)
	}

	// Resolution is announced asynchronously; poll the item.
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		w = doJSON(t, router, http.MethodGet, "/media/"+item.ID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("get status = %d", w.Code)
		}
		got := decode[models.MediaItem](t, w)
		if got.DurationSeconds == 7.5 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("duration was never resolved")
}

func TestGetMediaNotFound(t *testing.T) {
	router := testEnv(t, "")
	w := doJSON(t, router, http.MethodGet, "/media/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAddClipStatusMapping(t *testing.T) {
	router := testEnv(t, "")
	item := uploadMedia(t, router, "a.mp4", []byte("v"))

	track := 0
	w := doJSON(t, router, http.MethodPost, "/timeline/clips", AddClipRequest{
		MediaID: item.ID, TrackIndex: &track, StartTime: 1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body = %s", w.Code, w.Body.String())
	}
	clip := decode[models.Clip](t, w)
	if clip.StartTime != 1 || clip.DurationSeconds != 5 {
		t.Errorf("clip = %+v", clip)
	}

	// Out-of-range track index is rejected, never clamped.
	bad := 3
	w = doJSON(t, router, http.MethodPost, "/timeline/clips", AddClipRequest{
		MediaID: item.ID, TrackIndex: &bad,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid track status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/timeline/clips", AddClipRequest{
		MediaID: "missing", TrackIndex: &track,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown media status = %d, want 404", w.Code)
	}

	// Missing track index fails validation.
	w = doJSON(t, router, http.MethodPost, "/timeline/clips", map[string]any{"media_id": item.ID})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing track status = %d, want 400", w.Code)
	}
}

func TestMoveAndDeleteClip(t *testing.T) {
	router := testEnv(t, "")
	item := uploadMedia(t, router, "b.mp4", []byte("v"))

	track := 1
	w := doJSON(t, router, http.MethodPost, "/timeline/clips", AddClipRequest{MediaID: item.ID, TrackIndex: &track})
	clip := decode[models.Clip](t, w)

	// Negative target clamps to zero.
	w = doJSON(t, router, http.MethodPatch, "/timeline/clips/"+clip.ID, MoveClipRequest{StartTime: -5})
	if w.Code != http.StatusOK {
		t.Fatalf("move status = %d", w.Code)
	}
	if moved := decode[models.Clip](t, w); moved.StartTime != 0 {
		t.Errorf("moved start = %v, want 0", moved.StartTime)
	}

	w = doJSON(t, router, http.MethodPatch, "/timeline/clips/missing", MoveClipRequest{StartTime: 1})
	if w.Code != http.StatusNotFound {
		t.Errorf("move unknown status = %d, want 404", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/timeline/clips/"+clip.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", w.Code)
	}
	// Deleting again is still a 204 no-op.
	w = doJSON(t, router, http.MethodDelete, "/timeline/clips/"+clip.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("repeat delete status = %d, want 204", w.Code)
	}
}

func TestSelectionEndpoints(t *testing.T) {
	router := testEnv(t, "")
	item := uploadMedia(t, router, "c.mp4", []byte("v"))

	w := doJSON(t, router, http.MethodGet, "/timeline/selection", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("empty selection status = %d, want 404", w.Code)
	}

	track := 0
	w = doJSON(t, router, http.MethodPost, "/timeline/clips", AddClipRequest{MediaID: item.ID, TrackIndex: &track, StartTime: 2})
	clip := decode[models.Clip](t, w)

	w = doJSON(t, router, http.MethodPost, "/timeline/clips/"+clip.ID+"/select", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("select status = %d", w.Code)
	}
	props := decode[editor.ClipProperties](t, w)
	if props.ClipID != clip.ID || props.Opacity != 100 || props.Volume != 100 {
		t.Errorf("props = %+v", props)
	}

	// Deleting the selected clip clears the panel.
	doJSON(t, router, http.MethodDelete, "/timeline/clips/"+clip.ID, nil)
	w = doJSON(t, router, http.MethodGet, "/timeline/selection", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("selection after delete status = %d, want 404", w.Code)
	}
}

func TestDragEndpoints(t *testing.T) {
	router := testEnv(t, "")
	item := uploadMedia(t, router, "d.mp4", []byte("v"))

	w := doJSON(t, router, http.MethodPost, "/input/drag/start", DragStartRequest{Kind: DragKindPlace, MediaID: item.ID})
	if w.Code != http.StatusNoContent {
		t.Fatalf("drag start status = %d, body = %s", w.Code, w.Body.String())
	}

	// Only one drag at a time.
	w = doJSON(t, router, http.MethodPost, "/input/drag/start", DragStartRequest{Kind: DragKindPlace, MediaID: item.ID})
	if w.Code != http.StatusConflict {
		t.Errorf("second drag status = %d, want 409", w.Code)
	}

	track := 0
	w = doJSON(t, router, http.MethodPost, "/input/drag/drop", DragDropRequest{X: 250, TrackIndex: &track})
	if w.Code != http.StatusOK {
		t.Fatalf("drop status = %d", w.Code)
	}
	var drop struct {
		Placed bool        `json:"placed"`
		Clip   models.Clip `json:"clip"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &drop); err != nil {
		t.Fatal(err)
	}
	if !drop.Placed || drop.Clip.StartTime != 2.0 {
		t.Errorf("drop = %+v, want placed at 2.0", drop)
	}

	// Drop off-track abandons silently.
	doJSON(t, router, http.MethodPost, "/input/drag/start", DragStartRequest{Kind: DragKindPlace, MediaID: item.ID})
	w = doJSON(t, router, http.MethodPost, "/input/drag/drop", DragDropRequest{X: 100})
	if w.Code != http.StatusOK {
		t.Fatalf("abandon drop status = %d", w.Code)
	}
	if got := decode[DroppedResponse](t, w); got.Placed {
		t.Error("off-track drop placed a clip")
	}

	// Unknown drag kind fails validation.
	w = doJSON(t, router, http.MethodPost, "/input/drag/start", DragStartRequest{Kind: "rotate"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad kind status = %d, want 400", w.Code)
	}

	// Cancel with no active drag is fine.
	w = doJSON(t, router, http.MethodPost, "/input/drag/cancel", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("cancel status = %d, want 204", w.Code)
	}
}

func TestPlaybackEndpoints(t *testing.T) {
	router := testEnv(t, "")
	item := uploadMedia(t, router, "e.mp4", []byte("v"))
	track := 0
	doJSON(t, router, http.MethodPost, "/timeline/clips", AddClipRequest{MediaID: item.ID, TrackIndex: &track})

	w := doJSON(t, router, http.MethodPost, "/playback/play", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("play status = %d", w.Code)
	}
	if st := decode[editor.PlaybackStatus](t, w); st.State != timeline.StatePlaying {
		t.Errorf("state = %v, want playing", st.State)
	}

	w = doJSON(t, router, http.MethodPost, "/playback/pause", nil)
	if st := decode[editor.PlaybackStatus](t, w); st.State != timeline.StatePaused {
		t.Errorf("state = %v, want paused", st.State)
	}

	w = doJSON(t, router, http.MethodPost, "/playback/stop", nil)
	st := decode[editor.PlaybackStatus](t, w)
	if st.State != timeline.StateStopped || st.CurrentTime != 0 {
		t.Errorf("stop = %+v, want stopped at 0", st)
	}

	// Seek past the end clamps to total duration (one 5 s default clip).
	w = doJSON(t, router, http.MethodPost, "/playback/seek", SeekRequest{Time: 100})
	if got := decode[PlayheadResponse](t, w); got.CurrentTime != 5 {
		t.Errorf("seek = %v, want clamp at 5", got.CurrentTime)
	}
}

func TestKeyAndRulerEndpoints(t *testing.T) {
	router := testEnv(t, "")
	item := uploadMedia(t, router, "f.mp4", []byte("v"))
	track := 0
	doJSON(t, router, http.MethodPost, "/timeline/clips", AddClipRequest{MediaID: item.ID, TrackIndex: &track})

	w := doJSON(t, router, http.MethodPost, "/input/ruler", RulerRequest{X: 200})
	if w.Code != http.StatusOK {
		t.Fatalf("ruler status = %d", w.Code)
	}
	if got := decode[PlayheadResponse](t, w); got.CurrentTime != 1 {
		t.Errorf("ruler seek = %v, want 1", got.CurrentTime)
	}

	w = doJSON(t, router, http.MethodPost, "/input/key", KeyRequest{Key: "ArrowRight"})
	if got := decode[KeyResponse](t, w); !got.Handled {
		t.Error("ArrowRight not handled")
	}
	w = doJSON(t, router, http.MethodPost, "/input/key", KeyRequest{Key: "F1"})
	if got := decode[KeyResponse](t, w); got.Handled {
		t.Error("F1 reported handled")
	}
	w = doJSON(t, router, http.MethodPost, "/input/key", KeyRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty key status = %d, want 400", w.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	router := testEnv(t, "")

	w := doJSON(t, router, http.MethodPost, "/export", ExportRequest{Format: "mp4", Quality: "high"})
	if w.Code != http.StatusConflict {
		t.Errorf("empty export status = %d, want 409", w.Code)
	}

	item := uploadMedia(t, router, "g.mp4", []byte("v"))
	track := 0
	doJSON(t, router, http.MethodPost, "/timeline/clips", AddClipRequest{MediaID: item.ID, TrackIndex: &track})

	w = doJSON(t, router, http.MethodPost, "/export", ExportRequest{Format: "webm", Quality: "low"})
	if w.Code != http.StatusCreated {
		t.Fatalf("export status = %d, body = %s", w.Code, w.Body.String())
	}
	res := decode[export.Result](t, w)
	if res.PlanID == "" || res.Manifest == "" {
		t.Errorf("result = %+v", res)
	}

	w = doJSON(t, router, http.MethodPost, "/export", ExportRequest{Format: "mov", Quality: "high"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad format status = %d, want 400", w.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	router := testEnv(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/timeline", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); !strings.Contains(got, "cutline") {
		t.Errorf("WWW-Authenticate = %q, want a cutline realm challenge", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/timeline", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/timeline", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid token status = %d, want 200", w.Code)
	}
}
