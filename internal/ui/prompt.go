package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/ytget/camroll/internal/capability"
)

// permissionMessageKey returns the prompt text key for p
func permissionMessageKey(p capability.Permission) string {
	switch p {
	case capability.PermissionCamera:
		return KeyPermissionCamera
	case capability.PermissionMicrophone:
		return KeyPermissionMic
	default:
		return KeyPermissionLibrary
	}
}

// promptPermission asks the user with an Allow/Deny dialog and blocks until
// they answer or ctx ends
func (ui *RootUI) promptPermission(ctx context.Context, p capability.Permission) (bool, error) {
	t := ui.localization.GetText
	answer := make(chan bool, 1)

	fyne.Do(func() {
		d := dialog.NewConfirm(t(KeyPermissionPrompt), t(permissionMessageKey(p)), func(ok bool) {
			answer <- ok
		}, ui.window)
		d.SetConfirmText(t(KeyAllow))
		d.SetDismissText(t(KeyDeny))
		d.Show()
	})

	select {
	case ok := <-answer:
		ui.log.Info("permission answered", "permission", p, "granted", ok)
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
