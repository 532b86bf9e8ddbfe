package ui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/camroll/internal/workflow"
)

// LinkBar imports a shared video link through a surface controller
type LinkBar struct {
	binding      *surfaceBinding
	localization *Localization
	onStart      func(link string)
	onFinished   func(err error)

	entry     *widget.Entry
	importBtn *widget.Button
	container *fyne.Container
}

func newLinkBar(b *surfaceBinding, loc *Localization, mobile *MobileUI, onStart func(string), onFinished func(error)) *LinkBar {
	lb := &LinkBar{
		binding:      b,
		localization: loc,
		onStart:      onStart,
		onFinished:   onFinished,
	}

	lb.entry = mobile.CreateMobileEntry(loc.GetText(KeyEnterLink))
	lb.entry.Validator = validateLink
	// Import when the user presses Enter
	lb.entry.OnSubmitted = func(string) { lb.submit() }

	lb.importBtn = widget.NewButton(IconLink+" "+loc.GetText(KeyImport), lb.submit)
	lb.container = container.NewBorder(nil, nil, nil, lb.importBtn, lb.entry)
	return lb
}

// submit starts the import of the entered link
func (lb *LinkBar) submit() {
	link := strings.TrimSpace(lb.entry.Text)
	if link == "" {
		return
	}
	if err := validateLink(link); err != nil {
		lb.entry.SetValidationError(err)
		return
	}

	lb.SetEnabled(false)
	if lb.onStart != nil {
		lb.onStart(link)
	}
	lb.binding.run("import_link", func(ctx context.Context, c *workflow.Controller) error {
		return c.ImportLink(ctx, link)
	}, func(err error) {
		if err == nil {
			lb.entry.SetText("")
		}
		lb.SetEnabled(true)
		if lb.onFinished != nil {
			lb.onFinished(err)
		}
	})
}

// SetEnabled enables or disables the bar
func (lb *LinkBar) SetEnabled(enabled bool) {
	if enabled {
		lb.entry.Enable()
		lb.importBtn.Enable()
		return
	}
	lb.entry.Disable()
	lb.importBtn.Disable()
}

// RefreshTexts updates texts after a language change
func (lb *LinkBar) RefreshTexts() {
	lb.entry.SetPlaceHolder(lb.localization.GetText(KeyEnterLink))
	lb.importBtn.SetText(IconLink + " " + lb.localization.GetText(KeyImport))
}

// Container returns the bar container
func (lb *LinkBar) Container() *fyne.Container {
	return lb.container
}

// validateLink accepts empty input and absolute http(s) URLs
func validateLink(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}
