//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pandalove/gopanda/internal/store"
	"github.com/pandalove/gopanda/pkg/gamestore"
	"github.com/pandalove/gopanda/pkg/musicstore"
	"github.com/pandalove/gopanda/pkg/photostore"
	"github.com/pandalove/gopanda/pkg/player"
	"github.com/pandalove/gopanda/pkg/search"
	"github.com/pandalove/gopanda/pkg/seed"
)

// Version info
const Version = "1.0.0"

// Global state
var logger *zap.Logger
var sqlStore *store.SQLiteStore
var photos *photostore.Store
var music *musicstore.Store
var games *gamestore.Store
var play *player.Player
var library *search.Library

func main() {
	var err error
	logger, err = zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}

	fmt.Println("[GoPanda] WASM Ready v" + Version)

	// Register exports
	js.Global().Set("GoPanda", js.ValueOf(map[string]interface{}{
		"version":   js.FuncOf(getVersion),
		"init":      js.FuncOf(initStores),
		"seed":      js.FuncOf(seedStores),
		"subscribe": js.FuncOf(subscribe),
		"flush":     js.FuncOf(flush),
		// Photo store API
		"photoList":           js.FuncOf(photoList),
		"photoGet":            js.FuncOf(photoGet),
		"photoAdd":            js.FuncOf(photoAdd),
		"photoRemove":         js.FuncOf(photoRemove),
		"photoToggleFavorite": js.FuncOf(photoToggleFavorite),
		"photoFavorites":      js.FuncOf(photoFavorites),
		"albumList":           js.FuncOf(albumList),
		"albumGet":            js.FuncOf(albumGet),
		"albumAdd":            js.FuncOf(albumAdd),
		"albumRemove":         js.FuncOf(albumRemove),
		"albumUpdate":         js.FuncOf(albumUpdate),
		"albumPhotos":         js.FuncOf(albumPhotos),
		// Music store API
		"songList":           js.FuncOf(songList),
		"songGet":            js.FuncOf(songGet),
		"songAdd":            js.FuncOf(songAdd),
		"songRemove":         js.FuncOf(songRemove),
		"songToggleFavorite": js.FuncOf(songToggleFavorite),
		"songFavorites":      js.FuncOf(songFavorites),
		"playlistList":       js.FuncOf(playlistList),
		"playlistGet":        js.FuncOf(playlistGet),
		"playlistAdd":        js.FuncOf(playlistAdd),
		"playlistRemove":     js.FuncOf(playlistRemove),
		"playlistAddSong":    js.FuncOf(playlistAddSong),
		"playlistRemoveSong": js.FuncOf(playlistRemoveSong),
		"playlistSongs":      js.FuncOf(playlistSongs),
		// Playback API
		"setCurrentSong":     js.FuncOf(setCurrentSong),
		"setPlaying":         js.FuncOf(setPlaying),
		"setCurrentPlaylist": js.FuncOf(setCurrentPlaylist),
		"playbackState":      js.FuncOf(playbackState),
		"nextSong":           js.FuncOf(nextSong),
		"previousSong":       js.FuncOf(previousSong),
		"playerProgress":     js.FuncOf(playerProgress),
		// Game store API
		"loveNoteList":        js.FuncOf(loveNoteList),
		"loveNoteAdd":         js.FuncOf(loveNoteAdd),
		"loveNoteRemove":      js.FuncOf(loveNoteRemove),
		"loveNoteMarkRead":    js.FuncOf(loveNoteMarkRead),
		"loveNoteUnreadCount": js.FuncOf(loveNoteUnreadCount),
		"quizQuestionList":    js.FuncOf(quizQuestionList),
		"quizQuestionAdd":     js.FuncOf(quizQuestionAdd),
		"quizQuestionRemove":  js.FuncOf(quizQuestionRemove),
		"quizResultList":      js.FuncOf(quizResultList),
		"quizResultAdd":       js.FuncOf(quizResultAdd),
		"quizResultLatest":    js.FuncOf(quizResultLatest),
		// Search API
		"search": js.FuncOf(searchLibrary),
		// Persistence (OPFS sync)
		"storeExport": js.FuncOf(storeExport),
		"storeImport": js.FuncOf(storeImport),
	}))

	select {}
}

// getVersion returns the module version
func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

func marshalJSON(v interface{}) interface{} {
	bytes, err := json.Marshal(v)
	if err != nil {
		return errorResult("marshal: " + err.Error())
	}
	return string(bytes)
}

func ready() bool {
	return photos != nil && music != nil && games != nil
}

// initStores opens the SQLite layer, hydrates the three stores from their
// snapshots and starts the player and the search index.
// Args: [] (uses an in-memory database; persist via storeExport/storeImport)
func initStores(this js.Value, args []js.Value) interface{} {
	if ready() {
		return successResult("already initialized")
	}

	var err error
	if sqlStore == nil {
		sqlStore, err = store.NewSQLiteStore()
		if err != nil {
			return errorResult("failed to initialize SQLite store: " + err.Error())
		}
	}

	photos = photostore.New(sqlStore, logger)
	music = musicstore.New(sqlStore, logger)
	games = gamestore.New(sqlStore, logger)
	play = player.New(music, logger)
	library = search.NewLibrary(photos, music, games, logger)

	fmt.Println("[GoPanda] ✅ Stores initialized")
	return successResult("initialized")
}

// seedStores fills every still-empty collection with the starter data.
// Call after init, typically on first launch only.
func seedStores(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	seed.Apply(photos, music, games)
	return successResult("seeded")
}

// subscribe registers a JS callback fired after every store mutation.
// Args: [callback function]
// The subscription lives for the page lifetime.
func subscribe(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return errorResult("subscribe requires 1 arg: callback")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}

	cb := args[0]
	notify := func() { cb.Invoke() }
	photos.Subscribe(notify)
	music.Subscribe(notify)
	games.Subscribe(notify)
	return successResult("subscribed")
}

// flush blocks until every pending snapshot has reached SQLite.
// Call before storeExport so the export sees the latest state.
func flush(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	photos.Flush()
	music.Flush()
	games.Flush()
	return successResult("flushed")
}

// =============================================================================
// Photo store API
// =============================================================================

func photoList(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	return marshalJSON(photos.Photos())
}

// photoGet: [id string] -> Photo JSON or null
func photoGet(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("photoGet requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	p, ok := photos.Photo(args[0].String())
	if !ok {
		return "null"
	}
	return marshalJSON(p)
}

// photoAdd: [photoJSON string]. A missing id is filled in.
func photoAdd(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("photoAdd requires 1 arg: photoJSON")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}

	var p photostore.Photo
	if err := json.Unmarshal([]byte(args[0].String()), &p); err != nil {
		return errorResult("invalid photo json: " + err.Error())
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	photos.AddPhoto(p)
	return successResult(p.ID)
}

func photoRemove(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("photoRemove requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	photos.RemovePhoto(args[0].String())
	return successResult("removed")
}

func photoToggleFavorite(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("photoToggleFavorite requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	photos.ToggleFavorite(args[0].String())
	return successResult("toggled")
}

func photoFavorites(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	return marshalJSON(photos.FavoritePhotos())
}

func albumList(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	return marshalJSON(photos.Albums())
}

// albumGet: [id string] -> Album JSON or null
func albumGet(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("albumGet requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	a, ok := photos.Album(args[0].String())
	if !ok {
		return "null"
	}
	return marshalJSON(a)
}

// albumAdd: [albumJSON string]. A missing id is filled in.
func albumAdd(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("albumAdd requires 1 arg: albumJSON")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}

	var a photostore.Album
	if err := json.Unmarshal([]byte(args[0].String()), &a); err != nil {
		return errorResult("invalid album json: " + err.Error())
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	photos.AddAlbum(a)
	return successResult(a.ID)
}

// albumRemove deletes the album and every photo inside it.
// Args: [id string]
func albumRemove(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("albumRemove requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	photos.RemoveAlbum(args[0].String())
	return successResult("removed")
}

// albumUpdate merges the given fields into an existing album.
// Args: [id string, updateJSON string] - absent fields stay untouched
func albumUpdate(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("albumUpdate requires 2 args: id, updateJSON")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}

	var upd photostore.AlbumUpdate
	if err := json.Unmarshal([]byte(args[1].String()), &upd); err != nil {
		return errorResult("invalid update json: " + err.Error())
	}
	photos.UpdateAlbum(args[0].String(), upd)
	return successResult("updated")
}

func albumPhotos(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("albumPhotos requires 1 arg: albumId")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	return marshalJSON(photos.AlbumPhotos(args[0].String()))
}

// =============================================================================
// Music store API
// =============================================================================

func songList(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	return marshalJSON(music.Songs())
}

// songGet: [id string] -> Song JSON or null
func songGet(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("songGet requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	s, ok := music.Song(args[0].String())
	if !ok {
		return "null"
	}
	return marshalJSON(s)
}

// songAdd: [songJSON string]. A missing id is filled in.
func songAdd(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("songAdd requires 1 arg: songJSON")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}

	var s musicstore.Song
	if err := json.Unmarshal([]byte(args[0].String()), &s); err != nil {
		return errorResult("invalid song json: " + err.Error())
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	music.AddSong(s)
	return successResult(s.ID)
}

// songRemove deletes a song and strips it from every playlist.
// Args: [id string]
func songRemove(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("songRemove requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	music.RemoveSong(args[0].String())
	return successResult("removed")
}

func songToggleFavorite(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("songToggleFavorite requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	music.ToggleFavorite(args[0].String())
	return successResult("toggled")
}

func songFavorites(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	return marshalJSON(music.FavoriteSongs())
}

func playlistList(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	return marshalJSON(music.Playlists())
}

// playlistGet: [id string] -> Playlist JSON or null
func playlistGet(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("playlistGet requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	p, ok := music.Playlist(args[0].String())
	if !ok {
		return "null"
	}
	return marshalJSON(p)
}

// playlistAdd: [playlistJSON string]. A missing id is filled in.
func playlistAdd(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("playlistAdd requires 1 arg: playlistJSON")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}

	var p musicstore.Playlist
	if err := json.Unmarshal([]byte(args[0].String()), &p); err != nil {
		return errorResult("invalid playlist json: " + err.Error())
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	music.AddPlaylist(p)
	return successResult(p.ID)
}

func playlistRemove(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("playlistRemove requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	music.RemovePlaylist(args[0].String())
	return successResult("removed")
}

// playlistAddSong: [playlistId string, songId string]
func playlistAddSong(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("playlistAddSong requires 2 args: playlistId, songId")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	music.AddSongToPlaylist(args[0].String(), args[1].String())
	return successResult("added")
}

// playlistRemoveSong: [playlistId string, songId string]
func playlistRemoveSong(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("playlistRemoveSong requires 2 args: playlistId, songId")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	music.RemoveSongFromPlaylist(args[0].String(), args[1].String())
	return successResult("removed")
}

func playlistSongs(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("playlistSongs requires 1 arg: playlistId")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	return marshalJSON(music.PlaylistSongs(args[0].String()))
}

// =============================================================================
// Playback API
// =============================================================================

func setCurrentSong(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("setCurrentSong requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	music.SetCurrentSong(args[0].String())
	return successResult("set")
}

// setPlaying: [playing bool]
func setPlaying(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("setPlaying requires 1 arg: playing")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	music.SetPlaying(args[0].Bool())
	return successResult("set")
}

// setCurrentPlaylist: [id string] - pass "" to return to the flat song order
func setCurrentPlaylist(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("setCurrentPlaylist requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	music.SetCurrentPlaylist(args[0].String())
	return successResult("set")
}

// playbackState returns the current song (or null), playing flag and active
// playlist in one call.
func playbackState(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}

	state := map[string]interface{}{
		"currentSongId":     music.CurrentSongID(),
		"isPlaying":         music.Playing(),
		"currentPlaylistId": music.CurrentPlaylistID(),
		"currentSong":       nil,
	}
	if s, ok := music.CurrentSong(); ok {
		state["currentSong"] = s
	}
	return marshalJSON(state)
}

// nextSong advances the selection and reports the new song id.
func nextSong(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	id, ok := music.NextSong()
	if !ok {
		return "null"
	}
	music.SetCurrentSong(id)
	return marshalJSON(id)
}

// previousSong steps the selection back and reports the new song id.
func previousSong(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	id, ok := music.PreviousSong()
	if !ok {
		return "null"
	}
	music.SetCurrentSong(id)
	return marshalJSON(id)
}

// playerProgress returns playback progress of the current song in [0, 1].
func playerProgress(this js.Value, args []js.Value) interface{} {
	if play == nil {
		return errorResult("stores not initialized")
	}
	return play.Progress()
}

// =============================================================================
// Game store API
// =============================================================================

func loveNoteList(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	return marshalJSON(games.LoveNotes())
}

// loveNoteAdd: [content string] - id and timestamp are generated here
func loveNoteAdd(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("loveNoteAdd requires 1 arg: content")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	n := gamestore.NewLoveNote(args[0].String())
	games.AddLoveNote(n)
	return successResult(n.ID)
}

func loveNoteRemove(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("loveNoteRemove requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	games.RemoveLoveNote(args[0].String())
	return successResult("removed")
}

func loveNoteMarkRead(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("loveNoteMarkRead requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	games.MarkLoveNoteRead(args[0].String())
	return successResult("marked")
}

func loveNoteUnreadCount(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	return games.UnreadLoveNoteCount()
}

func quizQuestionList(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	return marshalJSON(games.QuizQuestions())
}

// quizQuestionAdd: [questionJSON string]. A missing id is filled in.
func quizQuestionAdd(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("quizQuestionAdd requires 1 arg: questionJSON")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}

	var q gamestore.MemoryQuizQuestion
	if err := json.Unmarshal([]byte(args[0].String()), &q); err != nil {
		return errorResult("invalid question json: " + err.Error())
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	games.AddQuizQuestion(q)
	return successResult(q.ID)
}

func quizQuestionRemove(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("quizQuestionRemove requires 1 arg: id")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}
	games.RemoveQuizQuestion(args[0].String())
	return successResult("removed")
}

func quizResultList(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	return marshalJSON(games.QuizResults())
}

// quizResultAdd: [resultJSON string] - {date, score, totalQuestions}
func quizResultAdd(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("quizResultAdd requires 1 arg: resultJSON")
	}
	if !ready() {
		return errorResult("stores not initialized")
	}

	var r gamestore.QuizResult
	if err := json.Unmarshal([]byte(args[0].String()), &r); err != nil {
		return errorResult("invalid result json: " + err.Error())
	}
	games.AddQuizResult(r)
	return successResult("added")
}

func quizResultLatest(this js.Value, args []js.Value) interface{} {
	if !ready() {
		return errorResult("stores not initialized")
	}
	r, ok := games.LatestQuizResult()
	if !ok {
		return "null"
	}
	return marshalJSON(r)
}

// =============================================================================
// Search API
// =============================================================================

// search: [query string] -> JSON array of {id, kind, label}, best first
func searchLibrary(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("search requires 1 arg: query")
	}
	if library == nil {
		return errorResult("stores not initialized")
	}

	results := library.Search(args[0].String())
	if results == nil {
		return "[]"
	}
	return marshalJSON(results)
}

// =============================================================================
// Persistence (OPFS sync)
// =============================================================================

// storeExport serializes every snapshot to a Uint8Array for OPFS persistence.
// Flushes first so pending writes are included.
func storeExport(this js.Value, args []js.Value) interface{} {
	if sqlStore == nil {
		return errorResult("store not initialized")
	}
	if ready() {
		photos.Flush()
		music.Flush()
		games.Flush()
	}

	data, err := sqlStore.Export()
	if err != nil {
		return errorResult("export failed: " + err.Error())
	}

	jsArray := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(jsArray, data)

	fmt.Printf("[GoPanda] ✅ Exported %d bytes\n", len(data))
	return jsArray
}

// storeImport restores snapshots from a Uint8Array. Call before init so the
// stores hydrate from the imported data.
// Args: [data Uint8Array]
func storeImport(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("storeImport requires 1 arg: data (Uint8Array)")
	}
	if sqlStore == nil {
		var err error
		sqlStore, err = store.NewSQLiteStore()
		if err != nil {
			return errorResult("failed to initialize SQLite store: " + err.Error())
		}
	}

	jsArray := args[0]
	length := jsArray.Get("length").Int()
	data := make([]byte, length)
	js.CopyBytesToGo(data, jsArray)

	if err := sqlStore.Import(data); err != nil {
		return errorResult("import failed: " + err.Error())
	}

	fmt.Printf("[GoPanda] ✅ Imported %d bytes\n", length)
	return successResult(fmt.Sprintf("imported %d bytes", length))
}
