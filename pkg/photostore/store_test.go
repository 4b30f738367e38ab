package photostore

import (
	"context"
	"testing"

	"github.com/pandalove/gopanda/internal/store"
)

func newTestStore() *Store {
	return New(store.NewMemory(), nil)
}

func photo(id, albumID string) Photo {
	return Photo{ID: id, URI: "file://" + id, Date: "2023-06-01T10:00:00Z", AlbumID: albumID}
}

func TestAddRemovePhoto(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	s.AddPhoto(photo("1", "a1"))
	s.AddPhoto(photo("2", "a1"))

	if got := len(s.Photos()); got != 2 {
		t.Fatalf("expected 2 photos, got %d", got)
	}

	s.RemovePhoto("1")
	if _, ok := s.Photo("1"); ok {
		t.Error("removed photo still present")
	}

	s.RemovePhoto("missing")
	if got := len(s.Photos()); got != 1 {
		t.Errorf("remove of unknown id mutated collection, got %d", got)
	}
}

func TestToggleFavoritePhoto(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	s.AddPhoto(photo("1", "a1"))

	s.ToggleFavorite("1")
	s.ToggleFavorite("1")
	got, _ := s.Photo("1")
	if got.IsFavorite {
		t.Error("double toggle should restore the original value")
	}

	s.ToggleFavorite("missing")
	if got := len(s.Photos()); got != 1 {
		t.Errorf("toggle on unknown id mutated collection, got %d photos", got)
	}
}

func TestRemoveAlbumCascades(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	s.AddAlbum(Album{ID: "a1", Title: "First Dates", Date: "2023-01-01", PhotoCount: 2})
	s.AddAlbum(Album{ID: "a2", Title: "Trips", Date: "2023-02-01", PhotoCount: 1})
	s.AddPhoto(photo("1", "a1"))
	s.AddPhoto(photo("2", "a1"))
	s.AddPhoto(photo("3", "a2"))

	s.RemoveAlbum("a1")

	if _, ok := s.Album("a1"); ok {
		t.Error("album a1 still present")
	}
	photos := s.Photos()
	if len(photos) != 1 || photos[0].ID != "3" {
		ids := make([]string, len(photos))
		for i, p := range photos {
			ids[i] = p.ID
		}
		t.Errorf("cascade delete left photos %v, want [3]", ids)
	}
}

func TestRemovePhotoLeavesAlbum(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	s.AddAlbum(Album{ID: "a1", Title: "First Dates", PhotoCount: 1})
	s.AddPhoto(photo("1", "a1"))

	s.RemovePhoto("1")
	a, ok := s.Album("a1")
	if !ok {
		t.Fatal("album removed by photo deletion")
	}
	// PhotoCount is denormalized and deliberately not recomputed.
	if a.PhotoCount != 1 {
		t.Errorf("PhotoCount = %d, want untouched 1", a.PhotoCount)
	}
}

func TestUpdateAlbumPartialMerge(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	s.AddAlbum(Album{ID: "a1", Title: "First Dates", CoverURI: "file://cover", Date: "2023-01-01", PhotoCount: 3})

	title := "Anniversary"
	count := 7
	s.UpdateAlbum("a1", AlbumUpdate{Title: &title, PhotoCount: &count})

	a, _ := s.Album("a1")
	if a.Title != "Anniversary" || a.PhotoCount != 7 {
		t.Errorf("update not applied: %+v", a)
	}
	if a.CoverURI != "file://cover" || a.Date != "2023-01-01" {
		t.Errorf("untouched fields changed: %+v", a)
	}

	s.UpdateAlbum("missing", AlbumUpdate{Title: &title})
	if got := len(s.Albums()); got != 1 {
		t.Errorf("update on unknown id mutated collection, got %d albums", got)
	}
}

func TestOrphanedPhotosTolerated(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	// No album "ghost" exists; the photo is still accepted and queryable.
	s.AddPhoto(photo("1", "ghost"))

	got := s.AlbumPhotos("ghost")
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("AlbumPhotos for orphan album = %v, want the photo", got)
	}
}

func TestAlbumAndFavoriteQueries(t *testing.T) {
	s := newTestStore()
	defer s.Close()

	s.AddPhoto(photo("1", "a1"))
	s.AddPhoto(photo("2", "a2"))
	s.AddPhoto(photo("3", "a1"))
	s.ToggleFavorite("2")

	got := s.AlbumPhotos("a1")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("AlbumPhotos(a1) wrong or out of order: %v", got)
	}

	favs := s.FavoritePhotos()
	if len(favs) != 1 || favs[0].ID != "2" {
		t.Errorf("FavoritePhotos = %v, want [2]", favs)
	}
}

func TestPhotoSnapshotReload(t *testing.T) {
	kv := store.NewMemory()
	s := New(kv, nil)

	s.AddAlbum(Album{ID: "a1", Title: "First Dates", PhotoCount: 1})
	s.AddPhoto(photo("1", "a1"))
	s.Close()

	if _, ok, _ := kv.Load(context.Background(), StorageKey); !ok {
		t.Fatal("snapshot not persisted")
	}

	s2 := New(kv, nil)
	defer s2.Close()

	if _, ok := s2.Photo("1"); !ok {
		t.Error("reloaded store lost photo")
	}
	if _, ok := s2.Album("a1"); !ok {
		t.Error("reloaded store lost album")
	}
}
