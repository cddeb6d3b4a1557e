// Package pipeline provides the orchestration logic that turns a song list
// into cards, reports and playlists.
//
// # Manager
//
// The Manager coordinates the stages of the workflow:
//
//  1. Generate: parse the song list and write the batch document
//  2. Extract: split the batch document into one card per song
//  3. Classify: read the cards and write the classified set report
//  4. Playlists: write genre, energy and complete playlists
//  5. ImportYouTube: write cards from a video or playlist
//
// Tag and Index work on the card library as well: the first writes ID3
// tags into the matching MP3 files, the second fills the SQLite index.
// RunAll chains steps 1 to 4.
//
// # Basic Usage
//
//	manager := pipeline.NewManager(settings, func(event pipeline.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	if err := manager.RunAll(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Progress Events
//
// Every stage reports through the callback given to NewManager:
//
//	func handleProgress(event pipeline.ProgressEvent) {
//	    switch event.Level {
//	    case pipeline.LevelInfo:
//	        // Stage started
//	    case pipeline.LevelVerbose:
//	        // One record handled
//	    case pipeline.LevelWarning:
//	        // Record skipped, the stage continues
//	    case pipeline.LevelError:
//	        // Stage failed
//	    case pipeline.LevelSuccess:
//	        // Stage finished
//	    }
//	}
//
// The YouTube import may call the callback from several goroutines.
//
// # Locking
//
// A stage holds an exclusive lock on <root>/.djassist.lock while it runs.
// A second process working on the same root gets ErrLocked.
package pipeline
