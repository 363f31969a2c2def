package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ryanm101/biblioteca/internal/browse"
	"github.com/ryanm101/biblioteca/internal/catalog"
	"github.com/ryanm101/biblioteca/internal/showcase"
	"github.com/ryanm101/biblioteca/internal/wishlistview"
)

// Messages

type rowsMsg struct {
	rows []showcase.Row
}

type catalogMsg struct {
	result browse.Result
}

type detailMsg struct {
	id     int
	detail *catalog.GameDetail
}

type searchDebounceMsg struct {
	token uint64
}

type carouselTickMsg struct {
	id uint64
}

type removalDoneMsg struct {
	id int
}

type statusMsg string

// Commands

func loadRows(games Games, rows []showcase.Row) tea.Cmd {
	return func() tea.Msg {
		return rowsMsg{rows: showcase.LoadAll(context.Background(), games, rows)}
	}
}

func runCatalog(games Games, req browse.Request) tea.Cmd {
	return func() tea.Msg {
		return catalogMsg{result: browse.Run(context.Background(), games, req)}
	}
}

func loadDetail(details Details, id int) tea.Cmd {
	return func() tea.Msg {
		return detailMsg{id: id, detail: details.Detail(context.Background(), id)}
	}
}

func debounceSearch(delay time.Duration, token uint64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchDebounceMsg{token: token}
	})
}

func carouselTick(interval time.Duration, id uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return carouselTickMsg{id: id}
	})
}

func finishRemoval(id int) tea.Cmd {
	return tea.Tick(wishlistview.RemovalDelay, func(time.Time) tea.Msg {
		return removalDoneMsg{id: id}
	})
}

func openLink(open func(string) error, target string) tea.Cmd {
	return func() tea.Msg {
		if err := open(target); err != nil {
			return statusMsg("Could not open link: " + err.Error())
		}
		return statusMsg("Opened " + target)
	}
}
