package ui

// Package ui contains the Fyne user interface: four tabs (Camera, My Photos,
// Image Picker, Media Library) backed by workflow controllers, the gallery
// grid, permission prompts, notices and settings. Workflow operations run on
// their own goroutines; every widget mutation goes through fyne.Do. All UI
// strings are localized via Localization.
