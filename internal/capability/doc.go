package capability

// Package capability declares the external services the capture workflow
// depends on: permission grants, camera hardware, media pickers, link
// fetchers, navigation and user notices. Implementations live in camera,
// download, platform and ui.
