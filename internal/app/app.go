// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"uketsuke/internal/config"
	"uketsuke/internal/keys"
	"uketsuke/internal/pubsub"
	"uketsuke/internal/roster"
	"uketsuke/internal/ui/board"
	"uketsuke/internal/ui/help"
	"uketsuke/internal/ui/modal"
	"uketsuke/internal/ui/picker"
	"uketsuke/internal/ui/resultcard"
	"uketsuke/internal/ui/searchinput"
	"uketsuke/internal/ui/styles"
	"uketsuke/internal/ui/suggestions"
	"uketsuke/internal/ui/toaster"
	"uketsuke/internal/watcher"
)

// overlayKind names which overlay (if any) is on top of the main view.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayWalkIn
	overlayWalkInProgram
	overlayReassign
	overlayCapacity
	overlayCapacityPersist
	overlayImport
	overlayHelp
)

// Model is the root application state. The search input is the home of
// the keyboard; overlays borrow it while they are up.
type Model struct {
	store      *roster.Store
	cfg        config.Config
	configPath string
	keys       keys.KeyMap

	search  searchinput.Model
	sugg    suggestions.Model
	results resultcard.Model
	board   board.Model
	toaster toaster.Model
	help    help.Model

	overlay overlayKind
	modal   modal.Model
	picker  picker.Model

	// pending state for multi-step overlays
	walkInKanji string
	walkInKana  string
	reassignID  string

	// last query that produced results / zero matches
	searchQuery string
	noMatches   bool

	// import supersession
	importGen  int
	lastImport string

	// store change feed
	storeCtx      context.Context
	storeCancel   context.CancelFunc
	storeListener *pubsub.ContinuousListener[roster.Change]

	// roster file auto-reload
	watcherHandle   *watcher.Watcher
	watcherCtx      context.Context
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.Event]

	width  int
	height int
}

// New creates the application model. configPath is where capacity
// changes are persisted; rosterPath, when non-empty, is imported on
// startup.
func New(store *roster.Store, cfg config.Config, configPath, rosterPath string) Model {
	storeCtx, storeCancel := context.WithCancel(context.Background())

	search := searchinput.New()
	search.SetPlaceholder("名前で検索（漢字・かな・カナ）")
	search.Focus()

	m := Model{
		store:         store,
		cfg:           cfg,
		configPath:    configPath,
		keys:          keys.DefaultKeyMap(),
		search:        search,
		sugg:          suggestions.New(),
		results:       resultcard.New(),
		board:         board.New(cfg.UI.ShowKana),
		toaster:       toaster.New(),
		help:          help.New(),
		storeCtx:      storeCtx,
		storeCancel:   storeCancel,
		storeListener: pubsub.NewContinuousListener(storeCtx, store.Broker()),
		lastImport:    rosterPath,
	}
	m.board = m.board.SetStats(store.Stats(), store.AbsentRecords())
	return m
}

// Init starts the store listener and kicks off the initial import when
// a roster path was given.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.storeListener.Listen()}
	if m.lastImport != "" {
		cmds = append(cmds, importCmd(m.lastImport, m.cfg.NoPreferenceProgram, m.importGen))
	}
	return tea.Batch(cmds...)
}

// View composes the main screen and stacks any active overlay on top.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor)
	countStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	var b strings.Builder
	b.WriteString(titleStyle.Render("オープンキャンパス受付"))
	b.WriteString(countStyle.Render(fmt.Sprintf("  登録 %d人", m.store.Len())))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")

	if m.sugg.Len() > 0 {
		b.WriteString(m.sugg.View())
		b.WriteString("\n")
	}
	if m.results.Len() > 0 {
		b.WriteString(m.results.View())
		b.WriteString("\n")
	} else if m.noMatches {
		b.WriteString(resultcard.EmptyCard(m.searchQuery, m.width-4))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.board.View())

	view := b.String()

	switch m.overlay {
	case overlayWalkIn, overlayCapacity, overlayCapacityPersist, overlayImport:
		view = m.modal.Overlay(view)
	case overlayWalkInProgram, overlayReassign:
		view = m.picker.Overlay(view)
	case overlayHelp:
		view = m.help.Overlay(view)
	}

	return m.toaster.Overlay(view)
}

// Close releases the pubsub subscriptions and the file watcher.
func (m *Model) Close() error {
	m.storeCancel()
	m.store.Close()
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}

// setSize propagates the window size to every component.
func (m Model) setSize(width, height int) Model {
	m.width = width
	m.height = height
	m.search.SetWidth(width - 4)
	m.sugg.SetWidth(width - 4)
	m.results = m.results.SetWidth(min(width-4, 60))
	m.board = m.board.SetWidth(width)
	m.toaster = m.toaster.SetSize(width, height)
	m.help = m.help.SetSize(width, height)
	m.modal = m.modal.SetSize(width, height)
	m.picker = m.picker.SetSize(width, height)
	return m
}

