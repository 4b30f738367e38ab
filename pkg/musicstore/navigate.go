package musicstore

// Playback navigation. Next/previous are pure queries: they never move the
// selection themselves, the caller advances by passing the returned id to
// SetCurrentSong.
//
// The traversal order is the active playlist's SongIDs when a playlist is
// selected, otherwise the song collection. Wrap-around is unconditional, so a
// single-entry ordering self-loops.

// NextSong returns the id of the song after the current one.
// ok is false when no song is selected, the active playlist is missing, or
// the ordering is empty.
func (s *Store) NextSong() (string, bool) {
	return s.step(1)
}

// PreviousSong returns the id of the song before the current one.
func (s *Store) PreviousSong() (string, bool) {
	return s.step(-1)
}

func (s *Store) step(dir int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.state.CurrentSongID
	if current == "" {
		return "", false
	}

	var ids []string
	if pid := s.state.CurrentPlaylistID; pid != "" {
		p, ok := s.findPlaylistLocked(pid)
		if !ok {
			return "", false
		}
		ids = p.SongIDs
	} else {
		ids = make([]string, len(s.state.Songs))
		for i, song := range s.state.Songs {
			ids[i] = song.ID
		}
	}
	if len(ids) == 0 {
		return "", false
	}

	idx := -1
	for i, id := range ids {
		if id == current {
			idx = i
			break
		}
	}

	// A current id missing from the ordering wraps the same way as hitting
	// either end.
	if dir > 0 {
		if idx == -1 || idx == len(ids)-1 {
			return ids[0], true
		}
		return ids[idx+1], true
	}
	if idx <= 0 {
		return ids[len(ids)-1], true
	}
	return ids[idx-1], true
}
