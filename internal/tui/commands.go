package tui

import (
	"context"
	"io"
	"ranking-dashboard/internal/viewmodel"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
)

type refreshedMsg struct {
	err error
}

type submittedMsg struct {
	err error
}

type profileOpenedMsg struct {
	url string
	err error
}

func refreshCmd(ctx context.Context, vm *viewmodel.ViewModel) tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: vm.Refresh(ctx)}
	}
}

func submitCmd(ctx context.Context, vm *viewmodel.ViewModel) tea.Cmd {
	return func() tea.Msg {
		return submittedMsg{err: vm.SubmitDraft(ctx)}
	}
}

func openProfileCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return profileOpenedMsg{url: url, err: open(url)}
	}
}

// OpenInBrowser opens url with the desktop's default browser, keeping the
// helper process output away from the terminal the dashboard draws on.
func OpenInBrowser(url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}
