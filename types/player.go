package types

// RepeatMode controls what happens when playback reaches the end of a track
type RepeatMode string

const (
	RepeatNone RepeatMode = "none"
	RepeatOne  RepeatMode = "one"
	RepeatAll  RepeatMode = "all"
)

// Next returns the mode that follows m in the none -> one -> all cycle
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatNone:
		return RepeatOne
	case RepeatOne:
		return RepeatAll
	default:
		return RepeatNone
	}
}

// Track is a playlist entry
type Track struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Album    string  `json:"album"`
	Duration float64 `json:"duration"`
	FilePath string  `json:"filePath"`
}

// PlayerState is the shared playback state seen by every front-end window
type PlayerState struct {
	CurrentTrack *Track     `json:"currentTrack"`
	Playlist     []Track    `json:"playlist"`
	IsPlaying    bool       `json:"isPlaying"`
	CurrentTime  float64    `json:"currentTime"`
	Volume       float64    `json:"volume"`
	Shuffle      bool       `json:"shuffle"`
	Repeat       RepeatMode `json:"repeat"`
}
