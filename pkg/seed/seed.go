// Package seed holds the first-run data and applies it through the store
// add-operations. The stores themselves never seed anything: a collection is
// only populated here when it is empty.
package seed

import (
	"github.com/pandalove/gopanda/pkg/gamestore"
	"github.com/pandalove/gopanda/pkg/musicstore"
	"github.com/pandalove/gopanda/pkg/photostore"
)

// Songs is the starter library.
var Songs = []musicstore.Song{
	{ID: "1", Title: "Perfect", Artist: "Ed Sheeran", Duration: 263, URI: "https://example.com/perfect.mp3", CoverArt: "https://images.unsplash.com/photo-1470225620780-dba8ba36b745?q=80&w=1000", IsFavorite: true},
	{ID: "2", Title: "All of Me", Artist: "John Legend", Duration: 270, URI: "https://example.com/allofme.mp3", CoverArt: "https://images.unsplash.com/photo-1511671782779-c97d3d27a1d4?q=80&w=1000", IsFavorite: true},
	{ID: "3", Title: "Thinking Out Loud", Artist: "Ed Sheeran", Duration: 281, URI: "https://example.com/thinkingoutloud.mp3", CoverArt: "https://images.unsplash.com/photo-1470225620780-dba8ba36b745?q=80&w=1000"},
	{ID: "4", Title: "Just the Way You Are", Artist: "Bruno Mars", Duration: 221, URI: "https://example.com/justthewayyouare.mp3", CoverArt: "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?q=80&w=1000", IsFavorite: true},
	{ID: "5", Title: "Can't Help Falling in Love", Artist: "Elvis Presley", Duration: 182, URI: "https://example.com/canthelpfallinginlove.mp3", CoverArt: "https://images.unsplash.com/photo-1516450360452-9312f5e86fc7?q=80&w=1000"},
	{ID: "6", Title: "Love Me Like You Do", Artist: "Ellie Goulding", Duration: 252, URI: "https://example.com/lovemelikeyoudo.mp3", CoverArt: "https://images.unsplash.com/photo-1511671782779-c97d3d27a1d4?q=80&w=1000"},
	{ID: "7", Title: "A Thousand Years", Artist: "Christina Perri", Duration: 285, URI: "https://example.com/athousandyears.mp3", CoverArt: "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?q=80&w=1000", IsFavorite: true},
	{ID: "8", Title: "Marry You", Artist: "Bruno Mars", Duration: 230, URI: "https://example.com/marryyou.mp3", CoverArt: "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?q=80&w=1000"},
	{ID: "9", Title: "My Heart Will Go On", Artist: "Celine Dion", Duration: 280, URI: "https://example.com/myheartwillgoon.mp3", CoverArt: "https://images.unsplash.com/photo-1516450360452-9312f5e86fc7?q=80&w=1000"},
	{ID: "10", Title: "I Will Always Love You", Artist: "Whitney Houston", Duration: 273, URI: "https://example.com/iwillalwaysloveyou.mp3", CoverArt: "https://images.unsplash.com/photo-1516450360452-9312f5e86fc7?q=80&w=1000", IsFavorite: true},
}

// Playlists is the starter playlist set.
var Playlists = []musicstore.Playlist{
	{ID: "1", Title: "Our Favorites", CoverArt: "https://images.unsplash.com/photo-1470225620780-dba8ba36b745?q=80&w=1000", SongIDs: []string{"1", "2", "4", "7", "10"}},
	{ID: "2", Title: "Date Night", CoverArt: "https://images.unsplash.com/photo-1511671782779-c97d3d27a1d4?q=80&w=1000", SongIDs: []string{"1", "3", "5", "6"}},
	{ID: "3", Title: "Road Trip", CoverArt: "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?q=80&w=1000", SongIDs: []string{"4", "6", "8", "9"}},
}

// Albums and Photos form the starter gallery.
var Albums = []photostore.Album{
	{ID: "1", Title: "First Dates", CoverURI: "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?q=80&w=1000", Description: "Where it all began", Date: "2023-02-14T19:00:00Z", PhotoCount: 2},
	{ID: "2", Title: "Mountain Cabin Trip", CoverURI: "https://images.unsplash.com/photo-1449158743715-0a90ebb6d2d8?q=80&w=1000", Description: "Our first vacation together", Date: "2023-07-21T10:00:00Z", PhotoCount: 2},
}

var Photos = []photostore.Photo{
	{ID: "1", URI: "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?q=80&w=1000", Date: "2023-02-14T19:30:00Z", Title: "The Garden Bistro", Location: "Downtown", IsFavorite: true, AlbumID: "1"},
	{ID: "2", URI: "https://images.unsplash.com/photo-1529333166437-7750a6dd5a70?q=80&w=1000", Date: "2023-02-14T21:00:00Z", Title: "Fairy lights", AlbumID: "1"},
	{ID: "3", URI: "https://images.unsplash.com/photo-1449158743715-0a90ebb6d2d8?q=80&w=1000", Date: "2023-07-21T12:00:00Z", Title: "The cabin", Description: "Cozy fireplace weekend", AlbumID: "2"},
	{ID: "4", URI: "https://images.unsplash.com/photo-1476514525535-07fb3b4ae5f1?q=80&w=1000", Date: "2023-07-22T09:00:00Z", Title: "Morning hike", Location: "Blue Ridge", IsFavorite: true, AlbumID: "2"},
}

// LoveNotes is the starter note set.
var LoveNotes = []gamestore.LoveNote{
	{ID: "1", Content: "Just wanted to remind you how much you mean to me. You make every day brighter!", Date: "2023-10-15T14:30:00Z", IsRead: true},
	{ID: "2", Content: "Thinking of your smile right now and it's making my day better.", Date: "2023-11-02T09:15:00Z", IsRead: true},
	{ID: "3", Content: "Can't wait to see you later! I have a surprise planned.", Date: "2023-12-05T18:45:00Z"},
}

// QuizQuestions is the memory-quiz question bank.
var QuizQuestions = []gamestore.MemoryQuizQuestion{
	{ID: "1", Question: "What was the name of the restaurant where we had our first date?", Options: []string{"Cafe Delight", "The Garden Bistro", "Moonlight Diner", "Sunset Grill"}, CorrectAnswer: 1, Explanation: "We went to The Garden Bistro and sat by the window with the fairy lights."},
	{ID: "2", Question: "What color was the dress/shirt I wore on our first anniversary?", Options: []string{"Blue", "Red", "Black", "Green"}, CorrectAnswer: 0, Explanation: "I wore that blue dress/shirt that you always say brings out my eyes."},
	{ID: "3", Question: "What's my favorite dessert?", Options: []string{"Chocolate cake", "Strawberry cheesecake", "Tiramisu", "Ice cream"}, CorrectAnswer: 2, Explanation: "I always order tiramisu whenever it's on the menu!"},
	{ID: "4", Question: "Where did we go for our first vacation together?", Options: []string{"Beach resort", "Mountain cabin", "City trip", "Camping"}, CorrectAnswer: 1, Explanation: "We stayed in that cozy mountain cabin with the fireplace."},
	{ID: "5", Question: "What's my favorite movie genre?", Options: []string{"Romance", "Action", "Comedy", "Horror"}, CorrectAnswer: 2, Explanation: "I love comedies because I love laughing with you."},
	{ID: "6", Question: "What's my go-to comfort food?", Options: []string{"Pizza", "Mac and cheese", "Chicken soup", "Ice cream"}, CorrectAnswer: 1, Explanation: "Nothing beats mac and cheese when I'm feeling down."},
	{ID: "7", Question: "What's my favorite season?", Options: []string{"Spring", "Summer", "Fall", "Winter"}, CorrectAnswer: 2, Explanation: "I love fall with all the colorful leaves and cozy sweaters."},
	{ID: "8", Question: "What's my dream vacation destination?", Options: []string{"Paris", "Bali", "New York", "Tokyo"}, CorrectAnswer: 3, Explanation: "I've always wanted to explore Tokyo and experience the culture."},
	{ID: "9", Question: "What's my favorite way to spend a weekend?", Options: []string{"Outdoor adventures", "Movie marathon", "Shopping", "Reading at home"}, CorrectAnswer: 0, Explanation: "I love being outdoors and going on adventures with you."},
	{ID: "10", Question: "What's my favorite flower?", Options: []string{"Roses", "Tulips", "Sunflowers", "Lilies"}, CorrectAnswer: 2, Explanation: "Sunflowers always make me smile because they're so bright and cheerful."},
}

// ApplyPhotos seeds the gallery when both collections are empty.
func ApplyPhotos(s *photostore.Store) {
	if len(s.Photos()) > 0 || len(s.Albums()) > 0 {
		return
	}
	for _, a := range Albums {
		s.AddAlbum(a)
	}
	for _, p := range Photos {
		s.AddPhoto(p)
	}
}

// ApplyMusic seeds the library when both collections are empty.
func ApplyMusic(s *musicstore.Store) {
	if len(s.Songs()) > 0 || len(s.Playlists()) > 0 {
		return
	}
	for _, song := range Songs {
		s.AddSong(song)
	}
	for _, p := range Playlists {
		s.AddPlaylist(p)
	}
}

// ApplyGames seeds notes and quiz questions when all collections are empty.
// The quiz result log always starts empty.
func ApplyGames(s *gamestore.Store) {
	if len(s.LoveNotes()) > 0 || len(s.QuizQuestions()) > 0 {
		return
	}
	for _, n := range LoveNotes {
		s.AddLoveNote(n)
	}
	for _, q := range QuizQuestions {
		s.AddQuizQuestion(q)
	}
}

// Apply seeds every store that is still empty. Nil stores are skipped.
func Apply(photos *photostore.Store, music *musicstore.Store, games *gamestore.Store) {
	if photos != nil {
		ApplyPhotos(photos)
	}
	if music != nil {
		ApplyMusic(music)
	}
	if games != nil {
		ApplyGames(games)
	}
}
