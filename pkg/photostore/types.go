// Package photostore owns the photo and album collections.
package photostore

// Photo is a single picture. URI is an opaque media reference resolved by the
// UI layer. AlbumID is a weak reference: an orphaned photo is tolerated, not
// an error.
type Photo struct {
	ID          string `json:"id"`
	URI         string `json:"uri"`
	Date        string `json:"date"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	IsFavorite  bool   `json:"isFavorite"`
	AlbumID     string `json:"albumId"`
}

// Album groups photos. PhotoCount is supplied by the caller at creation time
// and is never reconciled against the photo collection.
type Album struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CoverURI    string `json:"coverUri"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	PhotoCount  int    `json:"photoCount"`
}

// AlbumUpdate describes the mutable album fields. A nil field means no update
// for that attribute.
type AlbumUpdate struct {
	Title       *string
	CoverURI    *string
	Description *string
	Date        *string
	PhotoCount  *int
}

func (u AlbumUpdate) apply(a *Album) {
	if u.Title != nil {
		a.Title = *u.Title
	}
	if u.CoverURI != nil {
		a.CoverURI = *u.CoverURI
	}
	if u.Description != nil {
		a.Description = *u.Description
	}
	if u.Date != nil {
		a.Date = *u.Date
	}
	if u.PhotoCount != nil {
		a.PhotoCount = *u.PhotoCount
	}
}
