package musicstore

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/pandalove/gopanda/internal/store"
)

// StorageKey is the KV key the music snapshot persists under.
const StorageKey = "music-storage"

// snapshot is the persisted shape: full collections plus selection state.
// An empty CurrentSongID / CurrentPlaylistID means nothing is selected.
type snapshot struct {
	Songs             []Song     `json:"songs"`
	Playlists         []Playlist `json:"playlists"`
	CurrentSongID     string     `json:"currentSongId"`
	IsPlaying         bool       `json:"isPlaying"`
	CurrentPlaylistID string     `json:"currentPlaylistId"`
}

// Store owns the music collections. Mutations update memory synchronously,
// enqueue a full-state snapshot save (fire-and-forget) and then notify
// subscribers. Operations on absent ids are silent no-ops.
type Store struct {
	mu    sync.RWMutex
	state snapshot

	writer *store.Writer
	log    *zap.Logger

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New loads the persisted snapshot (if any) and returns a ready store.
// A corrupt or unreadable snapshot is discarded and the store starts empty.
func New(kv store.KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		writer: store.NewWriter(kv, StorageKey, log),
		log:    log,
		subs:   make(map[int]func()),
	}

	blob, ok, err := kv.Load(context.Background(), StorageKey)
	if err != nil {
		log.Warn("music snapshot load failed", zap.Error(err))
		return s
	}
	if ok {
		if err := json.Unmarshal(blob, &s.state); err != nil {
			log.Warn("music snapshot corrupt, starting empty", zap.Error(err))
			s.state = snapshot{}
		}
	}
	return s
}

// Close flushes pending saves and stops the background writer.
func (s *Store) Close() { s.writer.Close() }

// Flush blocks until pending snapshot saves complete.
func (s *Store) Flush() { s.writer.Flush() }

// Subscribe registers fn to run synchronously after every mutation.
// The returned cancel func removes the subscription.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// snapshotLocked marshals the current state; callers hold s.mu.
func (s *Store) snapshotLocked() []byte {
	blob, err := json.Marshal(s.state)
	if err != nil {
		s.log.Warn("music snapshot marshal failed", zap.Error(err))
		return nil
	}
	return blob
}

// commit enqueues the snapshot and notifies subscribers, outside the lock.
func (s *Store) commit(blob []byte) {
	if blob != nil {
		s.writer.Enqueue(blob)
	}
	s.notify()
}

// AddSong appends a song to the library.
func (s *Store) AddSong(song Song) {
	s.mu.Lock()
	s.state.Songs = append(s.state.Songs, song)
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// RemoveSong removes the song and strips its id from every playlist.
func (s *Store) RemoveSong(id string) {
	s.mu.Lock()
	songs := s.state.Songs[:0:0]
	for _, song := range s.state.Songs {
		if song.ID != id {
			songs = append(songs, song)
		}
	}
	s.state.Songs = songs

	for i := range s.state.Playlists {
		ids := s.state.Playlists[i].SongIDs[:0:0]
		for _, sid := range s.state.Playlists[i].SongIDs {
			if sid != id {
				ids = append(ids, sid)
			}
		}
		s.state.Playlists[i].SongIDs = ids
	}
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// ToggleFavorite flips the favorite flag on the matching song.
func (s *Store) ToggleFavorite(id string) {
	s.mu.Lock()
	for i := range s.state.Songs {
		if s.state.Songs[i].ID == id {
			s.state.Songs[i].IsFavorite = !s.state.Songs[i].IsFavorite
			break
		}
	}
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// AddPlaylist appends a playlist.
func (s *Store) AddPlaylist(p Playlist) {
	s.mu.Lock()
	s.state.Playlists = append(s.state.Playlists, p.clone())
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// RemovePlaylist removes the playlist and clears the current playlist
// selection if it pointed at the removed id. Songs are untouched.
func (s *Store) RemovePlaylist(id string) {
	s.mu.Lock()
	playlists := s.state.Playlists[:0:0]
	for _, p := range s.state.Playlists {
		if p.ID != id {
			playlists = append(playlists, p)
		}
	}
	s.state.Playlists = playlists
	if s.state.CurrentPlaylistID == id {
		s.state.CurrentPlaylistID = ""
	}
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// AddSongToPlaylist appends songID to the playlist unless already present.
func (s *Store) AddSongToPlaylist(playlistID, songID string) {
	s.mu.Lock()
	for i := range s.state.Playlists {
		if s.state.Playlists[i].ID != playlistID {
			continue
		}
		present := false
		for _, sid := range s.state.Playlists[i].SongIDs {
			if sid == songID {
				present = true
				break
			}
		}
		if !present {
			s.state.Playlists[i].SongIDs = append(s.state.Playlists[i].SongIDs, songID)
		}
		break
	}
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// RemoveSongFromPlaylist removes songID from the playlist's ordering.
func (s *Store) RemoveSongFromPlaylist(playlistID, songID string) {
	s.mu.Lock()
	for i := range s.state.Playlists {
		if s.state.Playlists[i].ID != playlistID {
			continue
		}
		ids := s.state.Playlists[i].SongIDs[:0:0]
		for _, sid := range s.state.Playlists[i].SongIDs {
			if sid != songID {
				ids = append(ids, sid)
			}
		}
		s.state.Playlists[i].SongIDs = ids
		break
	}
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// SetCurrentSong selects a song by id; an empty id clears the selection.
// The id is not checked against the library.
func (s *Store) SetCurrentSong(id string) {
	s.mu.Lock()
	s.state.CurrentSongID = id
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// SetPlaying sets the playing flag. Setting it with no song selected is
// permitted and has no player effect.
func (s *Store) SetPlaying(playing bool) {
	s.mu.Lock()
	s.state.IsPlaying = playing
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// SetCurrentPlaylist selects a playlist by id; an empty id clears it.
func (s *Store) SetCurrentPlaylist(id string) {
	s.mu.Lock()
	s.state.CurrentPlaylistID = id
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// Songs returns the library in collection order.
func (s *Store) Songs() []Song {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Song(nil), s.state.Songs...)
}

// Song returns the song with the given id.
func (s *Store) Song(id string) (Song, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, song := range s.state.Songs {
		if song.ID == id {
			return song, true
		}
	}
	return Song{}, false
}

// Playlists returns all playlists.
func (s *Store) Playlists() []Playlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Playlist, len(s.state.Playlists))
	for i, p := range s.state.Playlists {
		out[i] = p.clone()
	}
	return out
}

// Playlist returns the playlist with the given id.
func (s *Store) Playlist(id string) (Playlist, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.findPlaylistLocked(id); ok {
		return p.clone(), true
	}
	return Playlist{}, false
}

func (s *Store) findPlaylistLocked(id string) (Playlist, bool) {
	for _, p := range s.state.Playlists {
		if p.ID == id {
			return p, true
		}
	}
	return Playlist{}, false
}

// CurrentSong returns the selected song, if the id resolves to one.
func (s *Store) CurrentSong() (Song, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.CurrentSongID == "" {
		return Song{}, false
	}
	for _, song := range s.state.Songs {
		if song.ID == s.state.CurrentSongID {
			return song, true
		}
	}
	return Song{}, false
}

// CurrentSongID returns the raw selection, which may point at a removed song.
func (s *Store) CurrentSongID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentSongID
}

// CurrentPlaylistID returns the active playlist selection.
func (s *Store) CurrentPlaylistID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentPlaylistID
}

// Playing reports the playing flag.
func (s *Store) Playing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsPlaying
}

// PlaylistSongs returns the library songs referenced by the playlist.
// Results come back in song-collection order, not SongIDs order; playback
// navigation is the only consumer of the playlist's own ordering.
func (s *Store) PlaylistSongs(playlistID string) []Song {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.findPlaylistLocked(playlistID)
	if !ok {
		return nil
	}
	member := make(map[string]bool, len(p.SongIDs))
	for _, id := range p.SongIDs {
		member[id] = true
	}

	var out []Song
	for _, song := range s.state.Songs {
		if member[song.ID] {
			out = append(out, song)
		}
	}
	return out
}

// FavoriteSongs returns favorited songs in collection order.
func (s *Store) FavoriteSongs() []Song {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Song
	for _, song := range s.state.Songs {
		if song.IsFavorite {
			out = append(out, song)
		}
	}
	return out
}
