package search

import (
	"testing"

	"github.com/pandalove/gopanda/internal/store"
	"github.com/pandalove/gopanda/pkg/gamestore"
	"github.com/pandalove/gopanda/pkg/musicstore"
	"github.com/pandalove/gopanda/pkg/photostore"
)

func TestCanonicalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Perfect", "perfect"},
		{"  All of Me!! ", "all of me"},
		{"Can’t Help Falling in Love", "can't help falling in love"},
		{"Date—Night / Photos", "date-night photos"},
		{"...", ""},
	}
	for _, c := range cases {
		if got := Canonicalize(c.in); got != c.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func compileTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Compile([]Entry{
		{ID: "1", Kind: KindSong, Label: "Perfect", Terms: []string{"Perfect", "Ed Sheeran"}},
		{ID: "2", Kind: KindSong, Label: "All of Me", Terms: []string{"All of Me", "John Legend"}},
		{ID: "n1", Kind: KindLoveNote, Label: "surprise note", Terms: []string{"Can't wait to see you later! I have a surprise planned."}},
	}, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return idx
}

func TestSearchByToken(t *testing.T) {
	idx := compileTestIndex(t)

	got := idx.Search("perfect")
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("Search(perfect) = %v, want song 1", got)
	}

	got = idx.Search("ed sheeran")
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("Search(ed sheeran) = %v, want song 1", got)
	}
}

func TestSearchByPhrase(t *testing.T) {
	idx := compileTestIndex(t)

	// "all", "of" and "me" are stopword or too-short tokens; only the whole
	// phrase pattern can match.
	got := idx.Search("All of Me")
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("Search(All of Me) = %v, want song 2", got)
	}
}

func TestSearchAcrossKinds(t *testing.T) {
	idx := compileTestIndex(t)

	got := idx.Search("surprise")
	if len(got) != 1 || got[0].Kind != KindLoveNote {
		t.Errorf("Search(surprise) = %v, want the love note", got)
	}
}

func TestSearchMisses(t *testing.T) {
	idx := compileTestIndex(t)

	if got := idx.Search("zzzz"); got != nil {
		t.Errorf("Search(zzzz) = %v, want nothing", got)
	}
	if got := idx.Search("the"); got != nil {
		t.Errorf("stopword query returned %v", got)
	}
	if got := idx.Search(""); got != nil {
		t.Errorf("empty query returned %v", got)
	}
}

func TestEmptyIndex(t *testing.T) {
	idx, err := Compile(nil, nil)
	if err != nil {
		t.Fatalf("Compile of empty entries failed: %v", err)
	}
	if got := idx.Search("anything"); got != nil {
		t.Errorf("empty index returned %v", got)
	}
}

func TestLibraryRebuildsAfterMutation(t *testing.T) {
	photos := photostore.New(store.NewMemory(), nil)
	music := musicstore.New(store.NewMemory(), nil)
	games := gamestore.New(store.NewMemory(), nil)
	defer photos.Close()
	defer music.Close()
	defer games.Close()

	lib := NewLibrary(photos, music, games, nil)
	defer lib.Close()

	if got := lib.Search("perfect"); got != nil {
		t.Fatalf("empty library returned %v", got)
	}

	music.AddSong(musicstore.Song{ID: "1", Title: "Perfect", Artist: "Ed Sheeran"})
	got := lib.Search("perfect")
	if len(got) != 1 || got[0].ID != "1" || got[0].Kind != KindSong {
		t.Fatalf("Search after add = %v, want song 1", got)
	}

	music.RemoveSong("1")
	if got := lib.Search("perfect"); got != nil {
		t.Errorf("Search after remove = %v, want nothing", got)
	}

	games.AddLoveNote(gamestore.LoveNote{ID: "n1", Content: "surprise picnic", Date: "2023-12-05"})
	photos.AddAlbum(photostore.Album{ID: "a1", Title: "Mountain Cabin Trip"})

	if got := lib.Search("picnic"); len(got) != 1 || got[0].Kind != KindLoveNote {
		t.Errorf("Search(picnic) = %v, want the love note", got)
	}
	if got := lib.Search("mountain cabin"); len(got) != 1 || got[0].Kind != KindAlbum {
		t.Errorf("Search(mountain cabin) = %v, want the album", got)
	}
}
