package download

// Package download imports media behind shared video links using yt-dlp
// (via github.com/lrstanley/go-ytdlp). One link yields one local file, which
// is handed to the capture workflow as an asset.
