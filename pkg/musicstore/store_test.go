package musicstore

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pandalove/gopanda/internal/store"
)

func newTestStore() (*Store, *store.Memory) {
	kv := store.NewMemory()
	return New(kv, nil), kv
}

func song(id, title string) Song {
	return Song{ID: id, Title: title, Artist: "Artist", Duration: 200, URI: "file://" + id}
}

func TestAddRemoveSong(t *testing.T) {
	s, _ := newTestStore()
	defer s.Close()

	s.AddSong(song("1", "Perfect"))
	s.AddSong(song("2", "All of Me"))

	if got := len(s.Songs()); got != 2 {
		t.Fatalf("expected 2 songs, got %d", got)
	}

	s.RemoveSong("1")
	if got := len(s.Songs()); got != 1 {
		t.Fatalf("expected 1 song after remove, got %d", got)
	}
	if _, ok := s.Song("1"); ok {
		t.Error("removed song still present")
	}

	// Removing an unknown id is a no-op.
	s.RemoveSong("nope")
	if got := len(s.Songs()); got != 1 {
		t.Errorf("remove of unknown id mutated collection, got %d songs", got)
	}
}

func TestRemoveSongStripsPlaylists(t *testing.T) {
	s, _ := newTestStore()
	defer s.Close()

	s.AddSong(song("1", "Perfect"))
	s.AddSong(song("2", "All of Me"))
	s.AddPlaylist(Playlist{ID: "p1", Title: "Our Favorites", SongIDs: []string{"1", "2"}})
	s.AddPlaylist(Playlist{ID: "p2", Title: "Date Night", SongIDs: []string{"2", "1"}})

	s.RemoveSong("1")

	for _, pid := range []string{"p1", "p2"} {
		p, ok := s.Playlist(pid)
		if !ok {
			t.Fatalf("playlist %s missing", pid)
		}
		if len(p.SongIDs) != 1 || p.SongIDs[0] != "2" {
			t.Errorf("playlist %s songIds = %v, want [2]", pid, p.SongIDs)
		}
	}

	// Re-adding a song with the same id does not restore playlist membership.
	s.AddSong(song("1", "Perfect"))
	p, _ := s.Playlist("p1")
	if len(p.SongIDs) != 1 {
		t.Errorf("re-added song reappeared in playlist: %v", p.SongIDs)
	}
}

func TestToggleFavoriteIdempotentPair(t *testing.T) {
	s, _ := newTestStore()
	defer s.Close()

	s.AddSong(song("1", "Perfect"))

	s.ToggleFavorite("1")
	got, _ := s.Song("1")
	if !got.IsFavorite {
		t.Fatal("first toggle should favorite the song")
	}

	s.ToggleFavorite("1")
	got, _ = s.Song("1")
	if got.IsFavorite {
		t.Fatal("second toggle should restore the original value")
	}

	// Unknown id mutates nothing.
	before := s.Songs()
	s.ToggleFavorite("nope")
	after := s.Songs()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("toggle on unknown id changed song %s", before[i].ID)
		}
	}
}

func TestAddSongToPlaylistIdempotent(t *testing.T) {
	s, _ := newTestStore()
	defer s.Close()

	s.AddPlaylist(Playlist{ID: "p1", Title: "Road Trip"})

	s.AddSongToPlaylist("p1", "4")
	s.AddSongToPlaylist("p1", "4")

	p, _ := s.Playlist("p1")
	if len(p.SongIDs) != 1 || p.SongIDs[0] != "4" {
		t.Errorf("songIds = %v, want exactly one occurrence of 4", p.SongIDs)
	}

	s.RemoveSongFromPlaylist("p1", "4")
	p, _ = s.Playlist("p1")
	if len(p.SongIDs) != 0 {
		t.Errorf("songIds = %v, want empty", p.SongIDs)
	}
}

func TestRemovePlaylistClearsSelection(t *testing.T) {
	s, _ := newTestStore()
	defer s.Close()

	s.AddPlaylist(Playlist{ID: "p1", Title: "Our Favorites"})
	s.SetCurrentPlaylist("p1")

	s.RemovePlaylist("p1")
	if got := s.CurrentPlaylistID(); got != "" {
		t.Errorf("current playlist = %q, want cleared", got)
	}

	// Removing an unrelated playlist keeps the selection.
	s.AddPlaylist(Playlist{ID: "p2", Title: "Date Night"})
	s.AddPlaylist(Playlist{ID: "p3", Title: "Road Trip"})
	s.SetCurrentPlaylist("p2")
	s.RemovePlaylist("p3")
	if got := s.CurrentPlaylistID(); got != "p2" {
		t.Errorf("current playlist = %q, want p2", got)
	}
}

func TestPlaylistSongsUsesCollectionOrder(t *testing.T) {
	s, _ := newTestStore()
	defer s.Close()

	s.AddSong(song("1", "Perfect"))
	s.AddSong(song("2", "All of Me"))
	s.AddSong(song("3", "Thinking Out Loud"))
	// Playlist declares reverse order; the query ignores it.
	s.AddPlaylist(Playlist{ID: "p1", Title: "Our Favorites", SongIDs: []string{"3", "1"}})

	got := s.PlaylistSongs("p1")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		ids := make([]string, len(got))
		for i, sg := range got {
			ids[i] = sg.ID
		}
		t.Errorf("PlaylistSongs order = %v, want collection order [1 3]", ids)
	}

	if got := s.PlaylistSongs("missing"); got != nil {
		t.Errorf("missing playlist should return nothing, got %v", got)
	}
}

func TestCurrentSongToleratesDanglingID(t *testing.T) {
	s, _ := newTestStore()
	defer s.Close()

	s.AddSong(song("1", "Perfect"))
	s.SetCurrentSong("1")
	s.RemoveSong("1")

	// Selection is left pointing at nothing; the query just comes back empty.
	if got := s.CurrentSongID(); got != "1" {
		t.Errorf("current song id = %q, want untouched dangling id", got)
	}
	if _, ok := s.CurrentSong(); ok {
		t.Error("CurrentSong resolved a removed song")
	}
}

func TestFavoriteSongs(t *testing.T) {
	s, _ := newTestStore()
	defer s.Close()

	a := song("1", "Perfect")
	a.IsFavorite = true
	s.AddSong(a)
	s.AddSong(song("2", "All of Me"))

	got := s.FavoriteSongs()
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("FavoriteSongs = %v, want just song 1", got)
	}
}

func TestSnapshotPersistsAndReloads(t *testing.T) {
	kv := store.NewMemory()
	s := New(kv, nil)

	s.AddSong(song("1", "Perfect"))
	s.AddPlaylist(Playlist{ID: "p1", Title: "Our Favorites", SongIDs: []string{"1"}})
	s.SetCurrentSong("1")
	s.SetCurrentPlaylist("p1")
	s.SetPlaying(true)
	s.Close()

	blob, ok, err := kv.Load(context.Background(), StorageKey)
	if err != nil || !ok {
		t.Fatalf("snapshot not persisted: ok=%v err=%v", ok, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}

	s2 := New(kv, nil)
	defer s2.Close()

	if got := len(s2.Songs()); got != 1 {
		t.Fatalf("reloaded store has %d songs, want 1", got)
	}
	if got := s2.CurrentSongID(); got != "1" {
		t.Errorf("reloaded current song = %q, want 1", got)
	}
	if got := s2.CurrentPlaylistID(); got != "p1" {
		t.Errorf("reloaded current playlist = %q, want p1", got)
	}
	if !s2.Playing() {
		t.Error("reloaded store lost playing flag")
	}
}

func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	kv := store.NewMemory()
	if err := kv.Save(context.Background(), StorageKey, []byte("not json")); err != nil {
		t.Fatal(err)
	}

	s := New(kv, nil)
	defer s.Close()

	if got := len(s.Songs()); got != 0 {
		t.Errorf("store built from corrupt snapshot has %d songs, want 0", got)
	}
}

func TestSubscribeNotifiesAfterMutation(t *testing.T) {
	s, _ := newTestStore()
	defer s.Close()

	var calls int
	cancel := s.Subscribe(func() { calls++ })

	s.AddSong(song("1", "Perfect"))
	s.SetPlaying(true)
	if calls != 2 {
		t.Fatalf("subscriber ran %d times, want 2", calls)
	}

	cancel()
	s.SetPlaying(false)
	if calls != 2 {
		t.Errorf("cancelled subscriber still ran, calls=%d", calls)
	}
}
