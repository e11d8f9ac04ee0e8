package types

// AudioMetadata is the record returned by the get_audio_metadata command
type AudioMetadata struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Duration uint64 `json:"duration"` // seconds
	FilePath string `json:"file_path"`
}

// AudioFile represents a discovered audio file in the media library
type AudioFile struct {
	Filename string         `json:"filename"`
	Path     string         `json:"path"`
	Size     int64          `json:"size"`
	Format   string         `json:"format"` // "flac", "mp3", etc.
	Metadata *AudioMetadata `json:"metadata,omitempty"`
}
