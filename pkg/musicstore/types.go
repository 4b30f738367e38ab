// Package musicstore owns the song and playlist collections plus the playback
// selection state that drives the music player.
package musicstore

// Song is a single playable track. URI and CoverArt are opaque references
// resolved by the UI layer; no decoding happens here.
type Song struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Duration   int    `json:"duration"` // seconds
	URI        string `json:"uri"`
	CoverArt   string `json:"coverArt"`
	IsFavorite bool   `json:"isFavorite"`
}

// Playlist is an ordered list of song ids. The ids are weak references:
// removing a song from the library strips it from every playlist, but a
// playlist id may otherwise point at nothing without that being an error.
type Playlist struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	CoverArt string   `json:"coverArt"`
	SongIDs  []string `json:"songIds"`
}

func (p Playlist) clone() Playlist {
	cp := p
	cp.SongIDs = append([]string(nil), p.SongIDs...)
	return cp
}
