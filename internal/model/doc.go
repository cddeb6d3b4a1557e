// Package model defines the core data structures used throughout djassist.
//
// # Song
//
// Song is the per-track metadata record. Numeric fields are optional so the
// difference between "absent" and "default" stays visible:
//
//	song := &model.Song{Title: "Around the World", Artist: "Daft Punk", BPM: model.IntPtr(121)}
//	song.BPMOr(model.DefaultBPM)    // 121
//	song.EnergyOr(model.DefaultEnergy) // 5, energy is unknown
//	song.SourceIdentifier()         // "Daft Punk - Around the World"
//
// # Playlist groups and energy tiers
//
// PlaylistGroup is a named ordered selection of songs produced by the
// classifier. EnergyTier buckets a 1-10 energy score:
//
//	model.TierFor(model.IntPtr(3)) // TierLow
//	model.TierFor(model.IntPtr(7)) // TierHigh
//	model.TierFor(nil)             // TierUnknown
//
// # Errors
//
// ErrInputMissing, ErrConfiguration, ErrParseSkipped and ErrEncoding classify
// failures; Wrap attaches stage context while keeping errors.Is working.
package model
