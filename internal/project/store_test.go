package project

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RackPlanner/internal/editor"
	"github.com/piwi3910/RackPlanner/internal/model"
)

var (
	_ editor.Gateway = (*FileStore)(nil)
	_ editor.Gateway = (*HTTPStore)(nil)
)

func TestDecodeLayout_LegacyBareArray(t *testing.T) {
	data := []byte(`[
		{"y": 0, "u": 2, "label": "2U Server", "type": "server"},
		{"y": 4, "u": 1, "label": "1U Switch", "type": "switch", "notes": "core"},
		{"y": 6, "u": 1, "label": "1U Patch Panel", "type": "patch-panel", "notePosition": {"x": 1}}
	]`)

	racks, err := DecodeLayout(data)
	require.NoError(t, err)
	require.Len(t, racks, 1)

	r := racks[0]
	assert.Equal(t, "Rack 1", r.Name)
	assert.Equal(t, 42, r.HeightU)
	assert.NotEmpty(t, r.ID)
	require.Len(t, r.Equipment, 3)
	for _, it := range r.Equipment {
		assert.NotEmpty(t, it.ID)
		assert.Equal(t, model.DefaultNoteOffset(), it.NoteOffset)
		assert.NotNil(t, it.ShelfItems)
	}
	assert.Equal(t, "core", r.Equipment[1].Notes)
	assert.Equal(t, "", r.Equipment[0].Notes)
}

func TestDecodeLayout_RacksWithDefaults(t *testing.T) {
	data := []byte(`[
		{"id": 1712345678901.5, "name": "A", "equipment": [
			{"y": 0, "u": 1, "label": "V", "type": "v-pdu", "side": "right", "isFullHeight": true}
		]},
		{"name": "B", "heightU": 12, "equipment": []}
	]`)

	racks, err := DecodeLayout(data)
	require.NoError(t, err)
	require.Len(t, racks, 2)

	assert.Equal(t, "1712345678901.5", racks[0].ID)
	assert.Equal(t, 42, racks[0].HeightU)
	pdu := racks[0].Equipment[0]
	assert.Equal(t, model.KindPDU, pdu.Kind)
	assert.Equal(t, model.SideRight, pdu.Side)
	assert.Equal(t, 42, pdu.U, "full-height PDU spans the rack")

	assert.Equal(t, 12, racks[1].HeightU)
	assert.NotEmpty(t, racks[1].ID)
}

func TestDecodeLayout_EmptyAndInvalid(t *testing.T) {
	for _, in := range []string{"", "null", "[]"} {
		racks, err := DecodeLayout([]byte(in))
		require.NoError(t, err, in)
		assert.Empty(t, racks, in)
	}

	_, err := DecodeLayout([]byte(`{"name": "not a list"}`))
	assert.Error(t, err)
	_, err = DecodeLayout([]byte(`[1, 2]`))
	assert.Error(t, err)
}

func TestEncodeLayout_RoundTrip(t *testing.T) {
	rack := model.NewRack("Edge", 16)
	shelf := model.NewStandardItem("2U Shelf", "shelf", 2, 2)
	shelf.ShelfItems = append(shelf.ShelfItems, model.NewShelfItem("Modem", 130, model.Size{Width: 90, Height: 60}))
	rack.Equipment = append(rack.Equipment, shelf, model.NewPDU("V-PDU (10U)", model.SideLeft, 3, 10, false))

	data, err := EncodeLayout([]model.Rack{rack})
	require.NoError(t, err)
	back, err := DecodeLayout(data)
	require.NoError(t, err)

	require.Len(t, back, 1)
	assert.Equal(t, rack.ID, back[0].ID)
	require.Len(t, back[0].Equipment, 2)
	assert.Equal(t, 130.0, back[0].Equipment[0].ShelfItems[0].X)
	assert.Equal(t, model.KindShelf, back[0].Equipment[0].ShelfItems[0].Kind)
	assert.Equal(t, 3, back[0].Equipment[1].Y)
	assert.False(t, back[0].Equipment[1].FullHeight)
}

func TestFileStore_SaveLoadListDelete(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "racks"))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names, "missing directory lists as empty")

	racks := []model.Rack{model.NewRack("Rack 1", 42)}
	require.NoError(t, store.Save(ctx, "zeta", racks))
	require.NoError(t, store.Save(ctx, "alpha", racks))

	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)

	loaded, err := store.Load(ctx, "alpha")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, racks[0].ID, loaded[0].ID)

	require.NoError(t, store.Delete(ctx, "alpha"))
	_, err = store.Load(ctx, "alpha")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(store.Delete(ctx, "alpha"), ErrNotFound))
}

func TestFileStore_PathSanitizesNames(t *testing.T) {
	store := NewFileStore("/data/racks")

	p, err := store.Path("../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data/racks", "passwd.json"), p)

	p, err = store.Path("lab.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data/racks", "lab.json"), p)

	for _, bad := range []string{"", "  ", "..", "/"} {
		_, err := store.Path(bad)
		assert.True(t, errors.Is(err, ErrInvalidName), "name %q", bad)
	}
}

func TestFileStore_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lab.json"), []byte("[]"), 0644))

	names, err := NewFileStore(dir).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"lab"}, names)
}

func TestFileStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewFileStore(t.TempDir())

	_, err := store.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, "x", nil), context.Canceled)
}

func TestHTTPStore_MapsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/load_layout/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":"error","message":"Layout 'missing' not found."}`))
		case "/api/layouts":
			_, _ = w.Write([]byte(`null`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"status":"error","message":"disk full"}`))
		}
	}))
	defer srv.Close()

	store := NewHTTPStore(srv.URL+"/", srv.Client())
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "Layout 'missing' not found.")

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, names)

	err = store.Save(ctx, "x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
