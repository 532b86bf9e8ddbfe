package model

// Package model defines the domain values shared across the app: media
// entries held by the registry, capture modes, camera facing and the phases
// of a capture workflow. Values are small and immutable so they can be handed
// to views without copying concerns.
