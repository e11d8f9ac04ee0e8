package app

import (
	"context"

	"audiodesk/bridge"
	"audiodesk/types"
)

// Command names exposed to the front-end
const (
	CmdGetAudioMetadata    = "get_audio_metadata"
	CmdScanLibrary         = "scan_library"
	CmdGetPlayerState      = "get_player_state"
	CmdSetCurrentTrack     = "set_current_track"
	CmdAddToPlaylist       = "add_to_playlist"
	CmdAddFileToPlaylist   = "add_file_to_playlist"
	CmdRemoveFromPlaylist  = "remove_from_playlist"
	CmdClearPlaylist       = "clear_playlist"
	CmdTogglePlayPause     = "toggle_play_pause"
	CmdSetPlaying          = "set_playing"
	CmdSetCurrentTime      = "set_current_time"
	CmdSetVolume           = "set_volume"
	CmdUpdateTrackDuration = "update_track_duration"
	CmdToggleShuffle       = "toggle_shuffle"
	CmdToggleRepeat        = "toggle_repeat"
	CmdNextTrack           = "next_track"
	CmdPreviousTrack       = "previous_track"
)

func (a *App) registerCommands() {
	b := a.Bridge

	b.Register(CmdGetAudioMetadata, a.getAudioMetadata)
	b.Register(CmdScanLibrary, a.scanLibrary)

	b.Register(CmdGetPlayerState, func(ctx context.Context, args bridge.Args) (any, error) {
		return a.Player.State(), nil
	})
	b.Register(CmdSetCurrentTrack, a.setCurrentTrack)
	b.Register(CmdAddToPlaylist, a.addToPlaylist)
	b.Register(CmdAddFileToPlaylist, a.addFileToPlaylist)
	b.Register(CmdRemoveFromPlaylist, func(ctx context.Context, args bridge.Args) (any, error) {
		id, err := args.String("trackId")
		if err != nil {
			return nil, err
		}
		return a.Player.RemoveFromPlaylist(id), nil
	})
	b.Register(CmdClearPlaylist, stateless(a.Player.ClearPlaylist))
	b.Register(CmdTogglePlayPause, stateless(a.Player.TogglePlayPause))
	b.Register(CmdSetPlaying, func(ctx context.Context, args bridge.Args) (any, error) {
		playing, err := args.Bool("playing")
		if err != nil {
			return nil, err
		}
		return a.Player.SetPlaying(playing), nil
	})
	b.Register(CmdSetCurrentTime, func(ctx context.Context, args bridge.Args) (any, error) {
		seconds, err := args.Float("time")
		if err != nil {
			return nil, err
		}
		return a.Player.SetCurrentTime(seconds), nil
	})
	b.Register(CmdSetVolume, func(ctx context.Context, args bridge.Args) (any, error) {
		volume, err := args.Float("volume")
		if err != nil {
			return nil, err
		}
		return a.Player.SetVolume(volume), nil
	})
	b.Register(CmdUpdateTrackDuration, func(ctx context.Context, args bridge.Args) (any, error) {
		id, err := args.String("trackId")
		if err != nil {
			return nil, err
		}
		duration, err := args.Float("duration")
		if err != nil {
			return nil, err
		}
		return a.Player.UpdateTrackDuration(id, duration), nil
	})
	b.Register(CmdToggleShuffle, stateless(a.Player.ToggleShuffle))
	b.Register(CmdToggleRepeat, stateless(a.Player.ToggleRepeat))
	b.Register(CmdNextTrack, stateless(a.Player.NextTrack))
	b.Register(CmdPreviousTrack, stateless(a.Player.PreviousTrack))
}

// stateless adapts a player operation without arguments into a command
func stateless(op func() types.PlayerState) bridge.CommandFunc {
	return func(ctx context.Context, args bridge.Args) (any, error) {
		return op(), nil
	}
}

// getAudioMetadata handles get_audio_metadata {filePath}
func (a *App) getAudioMetadata(ctx context.Context, args bridge.Args) (any, error) {
	filePath, err := args.String("filePath")
	if err != nil {
		return nil, err
	}
	return a.Metadata.GetAudioMetadata(ctx, filePath)
}

// scanLibrary handles scan_library {path?}
func (a *App) scanLibrary(ctx context.Context, args bridge.Args) (any, error) {
	subPath, err := args.OptionalString("path")
	if err != nil {
		return nil, err
	}

	files, err := a.Library.ScanAudioFiles(ctx, subPath)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []types.AudioFile{}
	}
	return map[string]any{
		"root":  a.Library.Root(),
		"files": files,
		"count": len(files),
	}, nil
}

// setCurrentTrack handles set_current_track {track}; a null track clears it
func (a *App) setCurrentTrack(ctx context.Context, args bridge.Args) (any, error) {
	if !args.Has("track") {
		return nil, args.Value("track", nil)
	}
	if args.IsNull("track") {
		return a.Player.SetCurrentTrack(nil), nil
	}

	var track types.Track
	if err := args.Value("track", &track); err != nil {
		return nil, err
	}
	return a.Player.SetCurrentTrack(&track), nil
}

// addToPlaylist handles add_to_playlist {track}
func (a *App) addToPlaylist(ctx context.Context, args bridge.Args) (any, error) {
	var track types.Track
	if err := args.Value("track", &track); err != nil {
		return nil, err
	}
	return a.Player.AddToPlaylist(track), nil
}

// addFileToPlaylist handles add_file_to_playlist {filePath}, building the
// track from get_audio_metadata
func (a *App) addFileToPlaylist(ctx context.Context, args bridge.Args) (any, error) {
	filePath, err := args.String("filePath")
	if err != nil {
		return nil, err
	}

	metadata, err := a.Metadata.GetAudioMetadata(ctx, filePath)
	if err != nil {
		return nil, err
	}

	return a.Player.AddToPlaylist(types.Track{
		Title:    metadata.Title,
		Artist:   metadata.Artist,
		Album:    metadata.Album,
		Duration: float64(metadata.Duration),
		FilePath: metadata.FilePath,
	}), nil
}
