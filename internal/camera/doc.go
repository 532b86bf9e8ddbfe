package camera

// Package camera implements the in-app camera on top of the ffmpeg binary.
// Stills are single JPEG frames; recordings run until StopRecording sends
// ffmpeg the quit keystroke so the MP4 is finalized.
