package services

import (
	"math/rand/v2"
	"sync"

	"audiodesk/logger"
	"audiodesk/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultVolume is the volume of a fresh player
const DefaultVolume = 0.7

// StateNotifier receives every player state change
type StateNotifier interface {
	BroadcastState(action string, state types.PlayerState)
}

// Player interface defines the shared playback state operations
type Player interface {
	State() types.PlayerState
	SetCurrentTrack(track *types.Track) types.PlayerState
	AddToPlaylist(track types.Track) types.PlayerState
	RemoveFromPlaylist(trackID string) types.PlayerState
	ClearPlaylist() types.PlayerState
	TogglePlayPause() types.PlayerState
	SetPlaying(playing bool) types.PlayerState
	SetCurrentTime(seconds float64) types.PlayerState
	SetVolume(volume float64) types.PlayerState
	UpdateTrackDuration(trackID string, duration float64) types.PlayerState
	ToggleShuffle() types.PlayerState
	ToggleRepeat() types.PlayerState
	NextTrack() types.PlayerState
	PreviousTrack() types.PlayerState
}

// player holds the playback state behind a mutex
type player struct {
	mu       sync.Mutex
	state    types.PlayerState
	notifier StateNotifier
	randIntN func(n int) int
}

// PlayerOption configures a player
type PlayerOption func(*player)

// WithNotifier broadcasts state changes to n
func WithNotifier(n StateNotifier) PlayerOption {
	return func(p *player) {
		p.notifier = n
	}
}

// WithRandom replaces the shuffle index source
func WithRandom(randIntN func(n int) int) PlayerOption {
	return func(p *player) {
		p.randIntN = randIntN
	}
}

// NewPlayer creates a player with an empty playlist
func NewPlayer(opts ...PlayerOption) Player {
	p := &player{
		state: types.PlayerState{
			Playlist: []types.Track{},
			Volume:   DefaultVolume,
			Repeat:   types.RepeatNone,
		},
		randIntN: rand.IntN,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns a snapshot of the current state
func (p *player) State() types.PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

// update applies fn and broadcasts the resulting state. The broadcast happens
// under the lock so subscribers see changes in order; notifiers must not block.
func (p *player) update(action string, fn func(s *types.PlayerState)) types.PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()

	fn(&p.state)
	snap := p.snapshot()

	logger.Debug("player state changed", zap.String("action", action))
	if p.notifier != nil {
		p.notifier.BroadcastState(action, snap)
	}
	return snap
}

func (p *player) snapshot() types.PlayerState {
	snap := p.state
	snap.Playlist = append([]types.Track{}, p.state.Playlist...)
	if p.state.CurrentTrack != nil {
		current := *p.state.CurrentTrack
		snap.CurrentTrack = &current
	}
	return snap
}

func (p *player) SetCurrentTrack(track *types.Track) types.PlayerState {
	return p.update("set_current_track", func(s *types.PlayerState) {
		if track == nil {
			s.CurrentTrack = nil
			return
		}
		t := *track
		s.CurrentTrack = &t
	})
}

// AddToPlaylist appends track, assigning an ID when it has none
func (p *player) AddToPlaylist(track types.Track) types.PlayerState {
	if track.ID == "" {
		track.ID = uuid.New().String()
	}
	return p.update("add_to_playlist", func(s *types.PlayerState) {
		s.Playlist = append(s.Playlist, track)
	})
}

func (p *player) RemoveFromPlaylist(trackID string) types.PlayerState {
	return p.update("remove_from_playlist", func(s *types.PlayerState) {
		kept := s.Playlist[:0]
		for _, t := range s.Playlist {
			if t.ID != trackID {
				kept = append(kept, t)
			}
		}
		s.Playlist = kept
	})
}

func (p *player) ClearPlaylist() types.PlayerState {
	return p.update("clear_playlist", func(s *types.PlayerState) {
		s.Playlist = []types.Track{}
	})
}

func (p *player) TogglePlayPause() types.PlayerState {
	return p.update("toggle_play_pause", func(s *types.PlayerState) {
		s.IsPlaying = !s.IsPlaying
	})
}

func (p *player) SetPlaying(playing bool) types.PlayerState {
	return p.update("set_playing", func(s *types.PlayerState) {
		s.IsPlaying = playing
	})
}

func (p *player) SetCurrentTime(seconds float64) types.PlayerState {
	return p.update("set_current_time", func(s *types.PlayerState) {
		s.CurrentTime = seconds
	})
}

// SetVolume clamps volume to [0, 1]
func (p *player) SetVolume(volume float64) types.PlayerState {
	return p.update("set_volume", func(s *types.PlayerState) {
		s.Volume = max(0, min(1, volume))
	})
}

// UpdateTrackDuration sets the duration on the current track and on every
// playlist entry with the given ID
func (p *player) UpdateTrackDuration(trackID string, duration float64) types.PlayerState {
	return p.update("update_track_duration", func(s *types.PlayerState) {
		if s.CurrentTrack != nil && s.CurrentTrack.ID == trackID {
			current := *s.CurrentTrack
			current.Duration = duration
			s.CurrentTrack = &current
		}
		for i := range s.Playlist {
			if s.Playlist[i].ID == trackID {
				s.Playlist[i].Duration = duration
			}
		}
	})
}

func (p *player) ToggleShuffle() types.PlayerState {
	return p.update("toggle_shuffle", func(s *types.PlayerState) {
		s.Shuffle = !s.Shuffle
	})
}

// ToggleRepeat cycles none -> one -> all -> none
func (p *player) ToggleRepeat() types.PlayerState {
	return p.update("toggle_repeat", func(s *types.PlayerState) {
		s.Repeat = s.Repeat.Next()
	})
}

// NextTrack advances to the following playlist entry, wrapping at the end.
// With shuffle on any entry may be picked. An empty playlist is left alone.
func (p *player) NextTrack() types.PlayerState {
	return p.update("next_track", func(s *types.PlayerState) {
		n := len(s.Playlist)
		if n == 0 {
			return
		}

		var next int
		if s.Shuffle {
			next = p.randIntN(n)
		} else {
			next = (currentIndex(s) + 1) % n
		}
		t := s.Playlist[next]
		s.CurrentTrack = &t
	})
}

// PreviousTrack moves to the prior playlist entry. From the first entry, or
// when the current track is not in the playlist, it goes to the last one.
func (p *player) PreviousTrack() types.PlayerState {
	return p.update("previous_track", func(s *types.PlayerState) {
		n := len(s.Playlist)
		if n == 0 {
			return
		}

		var prev int
		if s.Shuffle {
			prev = p.randIntN(n)
		} else if idx := currentIndex(s); idx <= 0 {
			prev = n - 1
		} else {
			prev = idx - 1
		}
		t := s.Playlist[prev]
		s.CurrentTrack = &t
	})
}

// currentIndex returns the playlist position of the current track, or -1
func currentIndex(s *types.PlayerState) int {
	if s.CurrentTrack == nil {
		return -1
	}
	for i, t := range s.Playlist {
		if t.ID == s.CurrentTrack.ID {
			return i
		}
	}
	return -1
}
