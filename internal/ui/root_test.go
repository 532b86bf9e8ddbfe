package ui

import (
	"testing"

	"github.com/ytget/camroll/internal/capability"
	"github.com/ytget/camroll/internal/download"
)

func TestFormatImportProgress(t *testing.T) {
	tests := []struct {
		progress download.Progress
		expected string
	}{
		{
			download.Progress{Link: "https://example.com/v", Title: "Clip", Percent: 42, TotalBytes: 10_000_000},
			"Importing Clip: 42% · 10MB",
		},
		{
			download.Progress{Link: "https://example.com/v", Percent: 5},
			"Importing https://example.com/v: 5%",
		},
	}

	for _, tt := range tests {
		if got := formatImportProgress("Importing", tt.progress); got != tt.expected {
			t.Errorf("formatImportProgress(%+v) = %q, expected %q", tt.progress, got, tt.expected)
		}
	}
}

func TestPermissionMessageKey(t *testing.T) {
	tests := []struct {
		permission capability.Permission
		expected   string
	}{
		{capability.PermissionCamera, KeyPermissionCamera},
		{capability.PermissionMicrophone, KeyPermissionMic},
		{capability.PermissionMediaLibrary, KeyPermissionLibrary},
	}

	for _, tt := range tests {
		if got := permissionMessageKey(tt.permission); got != tt.expected {
			t.Errorf("permissionMessageKey(%s) = %s, expected %s", tt.permission, got, tt.expected)
		}
	}
}

func TestTabScreensCoverNavigationTargets(t *testing.T) {
	targets := []capability.Screen{
		capability.ScreenCamera,
		capability.ScreenGallery,
		capability.ScreenPicker,
		capability.ScreenMediaLibrary,
	}
	for _, target := range targets {
		found := false
		for _, s := range tabScreens {
			if s == target {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected a tab for screen %s", target)
		}
	}
}
