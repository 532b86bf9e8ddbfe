package platform

// Package platform contains OS integration: capture directories, opening and
// revealing media files, the Android media scanner hook and device-backed
// permission checks.
