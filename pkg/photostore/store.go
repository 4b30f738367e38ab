package photostore

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/pandalove/gopanda/internal/store"
)

// StorageKey is the KV key the photo snapshot persists under.
const StorageKey = "photo-storage"

type snapshot struct {
	Photos []Photo `json:"photos"`
	Albums []Album `json:"albums"`
}

// Store owns the photo and album collections. Mutations update memory
// synchronously, enqueue a full-state snapshot save and notify subscribers.
// Operations on absent ids are silent no-ops.
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
		log.Warn("photo snapshot load failed", zap.Error(err))
		return s
	}
	if ok {
		if err := json.Unmarshal(blob, &s.state); err != nil {
			log.Warn("photo snapshot corrupt, starting empty", zap.Error(err))
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

func (s *Store) snapshotLocked() []byte {
	blob, err := json.Marshal(s.state)
	if err != nil {
		s.log.Warn("photo snapshot marshal failed", zap.Error(err))
		return nil
	}
	return blob
}

func (s *Store) commit(blob []byte) {
	if blob != nil {
		s.writer.Enqueue(blob)
	}
	s.notify()
}

// AddPhoto appends a photo. The album reference is not validated.
func (s *Store) AddPhoto(p Photo) {
	s.mu.Lock()
	s.state.Photos = append(s.state.Photos, p)
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// RemovePhoto removes the matching photo. The album is untouched.
func (s *Store) RemovePhoto(id string) {
	s.mu.Lock()
	photos := s.state.Photos[:0:0]
	for _, p := range s.state.Photos {
		if p.ID != id {
			photos = append(photos, p)
		}
	}
	s.state.Photos = photos
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// ToggleFavorite flips the favorite flag on the matching photo.
func (s *Store) ToggleFavorite(id string) {
	s.mu.Lock()
	for i := range s.state.Photos {
		if s.state.Photos[i].ID == id {
			s.state.Photos[i].IsFavorite = !s.state.Photos[i].IsFavorite
			break
		}
	}
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// AddAlbum appends an album.
func (s *Store) AddAlbum(a Album) {
	s.mu.Lock()
	s.state.Albums = append(s.state.Albums, a)
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// RemoveAlbum removes the album and every photo that referenced it.
func (s *Store) RemoveAlbum(id string) {
	s.mu.Lock()
	albums := s.state.Albums[:0:0]
	for _, a := range s.state.Albums {
		if a.ID != id {
			albums = append(albums, a)
		}
	}
	s.state.Albums = albums

	photos := s.state.Photos[:0:0]
	for _, p := range s.state.Photos {
		if p.AlbumID != id {
			photos = append(photos, p)
		}
	}
	s.state.Photos = photos
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// UpdateAlbum merges the non-nil fields of upd into the matching album.
func (s *Store) UpdateAlbum(id string, upd AlbumUpdate) {
	s.mu.Lock()
	for i := range s.state.Albums {
		if s.state.Albums[i].ID == id {
			upd.apply(&s.state.Albums[i])
			break
		}
	}
	blob := s.snapshotLocked()
	s.mu.Unlock()
	s.commit(blob)
}

// Photos returns the collection in insertion order.
func (s *Store) Photos() []Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Photo(nil), s.state.Photos...)
}

// Photo returns the photo with the given id.
func (s *Store) Photo(id string) (Photo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.state.Photos {
		if p.ID == id {
			return p, true
		}
	}
	return Photo{}, false
}

// Albums returns the collection in insertion order.
func (s *Store) Albums() []Album {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Album(nil), s.state.Albums...)
}

// Album returns the album with the given id.
func (s *Store) Album(id string) (Album, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.state.Albums {
		if a.ID == id {
			return a, true
		}
	}
	return Album{}, false
}

// AlbumPhotos returns the photos referencing albumID in collection order.
func (s *Store) AlbumPhotos(albumID string) []Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Photo
	for _, p := range s.state.Photos {
		if p.AlbumID == albumID {
			out = append(out, p)
		}
	}
	return out
}

// FavoritePhotos returns favorited photos in collection order.
func (s *Store) FavoritePhotos() []Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Photo
	for _, p := range s.state.Photos {
		if p.IsFavorite {
			out = append(out, p)
		}
	}
	return out
}
