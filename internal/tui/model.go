// Package tui is the terminal front end: a home tab with the hero carousel
// and curated rows, a searchable library grid, the wishlist page and a
// detail overlay.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ryanm101/biblioteca/internal/browse"
	"github.com/ryanm101/biblioteca/internal/catalog"
	"github.com/ryanm101/biblioteca/internal/config"
	"github.com/ryanm101/biblioteca/internal/links"
	"github.com/ryanm101/biblioteca/internal/logging"
	"github.com/ryanm101/biblioteca/internal/rawg"
	"github.com/ryanm101/biblioteca/internal/render"
	"github.com/ryanm101/biblioteca/internal/showcase"
	"github.com/ryanm101/biblioteca/internal/wishlist"
	"github.com/ryanm101/biblioteca/internal/wishlistview"
)

// Games lists games.
type Games interface {
	ListGames(ctx context.Context, q rawg.GameQuery) (catalog.Page, bool)
}

// Details loads a full game record.
type Details interface {
	Detail(ctx context.Context, id int) *catalog.GameDetail
}

// Options configure the front end.
type Options struct {
	PageSize         int
	SearchDebounce   time.Duration
	CarouselInterval time.Duration
	CarouselSize     int
	Rows             showcase.Options
	Filters          []string
	Links            links.Links
	Open             links.Opener
	Now              func() time.Time
}

// OptionsFromConfig derives Options from configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		PageSize:         cfg.GetPageSize(),
		SearchDebounce:   cfg.UI.SearchDebounce,
		CarouselInterval: cfg.UI.CarouselInterval,
		CarouselSize:     cfg.UI.CarouselSize,
		Rows: showcase.Options{
			PageSize:         10,
			NewReleaseWindow: cfg.UI.NewReleaseWindow,
			Genres:           cfg.GetGenreRows(),
		},
		Filters: cfg.GetFilters(),
		Links:   links.FromConfig(cfg.Links),
		Open:    links.Open,
		Now:     time.Now,
	}
}

type tab int

const (
	tabHome tab = iota
	tabLibrary
	tabWishlist
)

var tabNames = []string{"Home", "Library", "Wishlist"}

// session is state shared by every copy of the model. Wishlist
// notifications mutate it synchronously, inside the Update that toggled.
type session struct {
	saved    map[int]bool
	wishview *wishlistview.View
	removals []int
}

func (s *session) apply(c wishlist.Change) {
	if c.Saved {
		s.saved[c.ID] = true
	} else {
		delete(s.saved, c.ID)
	}
	if s.wishview.Apply(c) {
		s.removals = append(s.removals, c.ID)
	}
}

// drainRemovals schedules the end of every pending removal transition.
func (s *session) drainRemovals() tea.Cmd {
	if len(s.removals) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.removals))
	for _, id := range s.removals {
		cmds = append(cmds, finishRemoval(id))
	}
	s.removals = nil
	return tea.Batch(cmds...)
}

// Model is the Bubble Tea model.
type Model struct {
	opts     Options
	games    Games
	details  Details
	wishlist *wishlist.Store
	session  *session

	tab      tab
	width    int
	height   int
	showHelp bool
	status   string
	spinner  spinner.Model

	// Home
	rows        []showcase.Row
	rowsLoading bool
	carousel    *showcase.Carousel
	region      int // 0 = hero, 1.. = curated rows
	column      int

	// Library
	catalog   *browse.Catalog
	debouncer *browse.Debouncer
	search    textinput.Model
	searching bool
	filterIdx int
	cursor    int

	// Wishlist
	wishCursor int

	// Detail overlay
	detail   *render.Detail
	viewport viewport.Model
}

// New creates the model. The wishlist subscription lives as long as the
// returned unsubscribe function is not called.
func New(games Games, details Details, store *wishlist.Store, opts Options) (Model, func()) {
	if opts.Open == nil {
		opts.Open = links.Open
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Filters) == 0 {
		opts.Filters = []string{""}
	}

	ctx := context.Background()
	saved := store.GetAll(ctx)
	sess := &session{
		saved:    make(map[int]bool, len(saved)),
		wishview: wishlistview.New(saved),
	}
	for _, g := range saved {
		sess.saved[g.ID] = true
	}
	unsubscribe := store.Subscribe(sess.apply)

	search := textinput.New()
	search.Placeholder = "Search games…"
	search.Prompt = "/ "
	search.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		opts:        opts,
		games:       games,
		details:     details,
		wishlist:    store,
		session:     sess,
		tab:         tabHome,
		spinner:     sp,
		rows:        showcase.CuratedRows(opts.Now(), opts.Rows),
		rowsLoading: true,
		carousel:    showcase.NewCarousel(nil, opts.CarouselInterval),
		region:      1,
		catalog:     browse.NewCatalog(opts.PageSize),
		debouncer:   browse.NewDebouncer(opts.SearchDebounce),
		search:      search,
		viewport:    viewport.New(60, 20),
	}
	return m, unsubscribe
}

// Init loads the curated rows and the first library page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadRows(m.games, m.rows),
		runCatalog(m.games, m.catalog.Start()),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case rowsMsg:
		return m.handleRows(msg)

	case catalogMsg:
		m.catalog.Apply(msg.result)
		if n := m.catalog.Grid().Len(); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case detailMsg:
		if m.detail == nil || m.detail.ID != msg.id {
			return m, nil
		}
		d := m.detail.Resolve(msg.detail)
		d.Saved = m.session.saved[msg.id]
		m.detail = &d
		m.refreshDetail()
		return m, nil

	case searchDebounceMsg:
		if !m.debouncer.Fire(msg.token) {
			return m, nil
		}
		req, ok := m.catalog.SetSearch(m.search.Value())
		if !ok {
			return m, nil
		}
		m.cursor = 0
		return m, runCatalog(m.games, req)

	case carouselTickMsg:
		if !m.carousel.Tick(msg.id) {
			return m, nil
		}
		return m, carouselTick(m.carousel.Interval, msg.id)

	case removalDoneMsg:
		m.session.wishview.Finish(msg.id)
		if n := m.session.wishview.Len(); m.wishCursor >= n && n > 0 {
			m.wishCursor = n - 1
		}
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleRows(msg rowsMsg) (tea.Model, tea.Cmd) {
	m.rows = msg.rows
	m.rowsLoading = false

	var hero []catalog.GameSummary
	for _, row := range m.rows {
		if row.Key == showcase.RowTopRated {
			hero = showcase.HeroItems(row.Games, m.opts.CarouselSize)
		}
	}
	m.carousel = showcase.NewCarousel(hero, m.opts.CarouselInterval)
	if m.tab != tabHome {
		return m, nil
	}
	if m.region == 0 {
		m.carousel.Enter()
		return m, nil
	}
	id := m.carousel.Start()
	if !m.carousel.Running() {
		return m, nil
	}
	return m, carouselTick(m.carousel.Interval, id)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// Search box captures typing
	if m.searching {
		return m.handleSearchKey(msg)
	}

	if key == "?" {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.detail != nil {
		return m.handleDetailKey(msg)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "tab":
		return m.switchTab((m.tab + 1) % tab(len(tabNames)))
	case "shift+tab":
		return m.switchTab((m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames)))
	case "n":
		return m, openLink(m.opts.Open, m.opts.Links.Newsletter())
	}

	switch m.tab {
	case tabHome:
		return m.handleHomeKey(key)
	case tabLibrary:
		return m.handleLibraryKey(key)
	case tabWishlist:
		return m.handleWishlistKey(key)
	}
	return m, nil
}

// switchTab moves to t, pausing the carousel while home is hidden and
// resuming it on return unless the hero has focus.
func (m Model) switchTab(t tab) (tea.Model, tea.Cmd) {
	if t == m.tab {
		return m, nil
	}
	leavingHome := m.tab == tabHome
	m.tab = t

	switch {
	case leavingHome:
		m.carousel.Stop()
	case t == tabHome && m.region == 0:
		m.carousel.Enter()
	case t == tabHome:
		id := m.carousel.Start()
		if m.carousel.Running() {
			return m, carouselTick(m.carousel.Interval, id)
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	token := m.debouncer.Trigger()
	return m, tea.Batch(cmd, debounceSearch(m.debouncer.Delay, token))
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case render.ClosesDetail(key):
		m.detail = nil
		return m, nil
	case key == "w":
		game, ok := m.detail.Summary()
		if !ok {
			return m, nil
		}
		return m.toggle(game)
	case key == "b":
		return m, openLink(m.opts.Open, m.detail.PurchaseURL)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleHomeKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.region > 0 {
			return m.focusRegion(m.region - 1)
		}
	case "down", "j":
		if m.region < len(m.rows) {
			return m.focusRegion(m.region + 1)
		}
	case "left", "h":
		if m.region == 0 {
			return m.carouselNav(m.carousel.Prev)
		}
		if m.column > 0 {
			m.column--
		}
	case "right", "l":
		if m.region == 0 {
			return m.carouselNav(m.carousel.Next)
		}
		if row := m.rows[m.region-1]; m.column < len(row.Games)-1 {
			m.column++
		}
	case "enter", "w", " ":
		game, ok := m.homeSelection()
		if !ok {
			return m, nil
		}
		return m.cardAction(render.CardAction(key), game)
	default:
		if m.region == 0 {
			if i, err := strconv.Atoi(key); err == nil && i >= 1 && i <= m.carousel.Len() {
				return m.carouselNav(func() (uint64, bool) { return m.carousel.Goto(i - 1) })
			}
		}
		return m.tabShortcut(key)
	}
	return m, nil
}

// focusRegion moves focus between the hero and the rows. The hero having
// focus is the pointer being over the carousel.
func (m Model) focusRegion(region int) (tea.Model, tea.Cmd) {
	prev := m.region
	m.region = region
	m.column = 0

	switch {
	case region == 0 && prev != 0:
		m.carousel.Enter()
	case region != 0 && prev == 0:
		id := m.carousel.Leave()
		if m.carousel.Running() {
			return m, carouselTick(m.carousel.Interval, id)
		}
	}
	return m, nil
}

func (m Model) carouselNav(nav func() (uint64, bool)) (tea.Model, tea.Cmd) {
	id, restart := nav()
	if !restart {
		return m, nil
	}
	return m, carouselTick(m.carousel.Interval, id)
}

func (m Model) homeSelection() (catalog.GameSummary, bool) {
	if m.region == 0 {
		return m.carousel.Current()
	}
	row := m.rows[m.region-1]
	if m.column >= len(row.Games) {
		return catalog.GameSummary{}, false
	}
	return row.Games[m.column], true
}

func (m Model) tabShortcut(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "1":
		return m.switchTab(tabHome)
	case "2":
		return m.switchTab(tabLibrary)
	case "3":
		return m.switchTab(tabWishlist)
	}
	return m, nil
}

func (m Model) handleLibraryKey(key string) (tea.Model, tea.Cmd) {
	grid := m.catalog.Grid()
	cols := m.gridColumns()

	switch key {
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "g", "G":
		n := len(m.opts.Filters)
		if key == "g" {
			m.filterIdx = (m.filterIdx + 1) % n
		} else {
			m.filterIdx = (m.filterIdx + n - 1) % n
		}
		m.cursor = 0
		return m, runCatalog(m.games, m.catalog.SetGenre(m.opts.Filters[m.filterIdx]))
	case "m":
		req, ok := m.catalog.LoadMore()
		if !ok {
			return m, nil
		}
		return m, runCatalog(m.games, req)
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(grid.Games)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case "down", "j":
		if m.cursor+cols < len(grid.Games) {
			m.cursor += cols
		}
	case "enter", "w", " ":
		if m.cursor >= len(grid.Games) {
			return m, nil
		}
		return m.cardAction(render.CardAction(key), grid.Games[m.cursor])
	default:
		return m.tabShortcut(key)
	}
	return m, nil
}

func (m Model) handleWishlistKey(key string) (tea.Model, tea.Cmd) {
	cards := m.session.wishview.Cards()
	switch key {
	case "up", "k", "left", "h":
		if m.wishCursor > 0 {
			m.wishCursor--
		}
	case "down", "j", "right", "l":
		if m.wishCursor < len(cards)-1 {
			m.wishCursor++
		}
	case "enter", "w", " ":
		if m.wishCursor >= len(cards) || cards[m.wishCursor].Removing {
			return m, nil
		}
		return m.cardAction(render.CardAction(key), cards[m.wishCursor].Game)
	default:
		return m.tabShortcut(key)
	}
	return m, nil
}

func (m Model) cardAction(action render.Action, game catalog.GameSummary) (tea.Model, tea.Cmd) {
	switch action {
	case render.ActionOpen:
		return m.openDetail(game)
	case render.ActionToggle:
		return m.toggle(game)
	}
	return m, nil
}

func (m Model) openDetail(game catalog.GameSummary) (tea.Model, tea.Cmd) {
	id := game.ID
	d := render.OpenDetail(game, m.session.saved[id], m.opts.Links.Purchase())
	m.detail = &d
	m.resizeViewport()
	m.refreshDetail()
	return m, loadDetail(m.details, id)
}

// toggle flips membership. Every view observes the change through the
// session before this returns.
func (m Model) toggle(game catalog.GameSummary) (tea.Model, tea.Cmd) {
	saved, err := m.wishlist.Toggle(context.Background(), game)
	if err != nil {
		logging.Warn("wishlist toggle failed", "id", game.ID, "error", err)
		m.status = "Wishlist unavailable: " + err.Error()
		return m, nil
	}

	label, _ := render.SaveState(saved)
	m.status = fmt.Sprintf("%s: %s", game.Name, label)
	if m.detail != nil && m.detail.ID == game.ID {
		d := *m.detail
		d.Saved = saved
		m.detail = &d
		m.refreshDetail()
	}
	return m, m.session.drainRemovals()
}

func (m *Model) resizeViewport() {
	w := m.width*3/4 - 6
	if w < 30 {
		w = 30
	}
	h := m.height - 8
	if h < 8 {
		h = 8
	}
	m.viewport.Width = w
	m.viewport.Height = h
	if m.detail != nil {
		m.refreshDetail()
	}
}

func (m *Model) refreshDetail() {
	if m.detail == nil {
		return
	}
	m.viewport.SetContent(m.detail.Body(m.viewport.Width))
}

// Saved reports the membership the views currently show for id.
func (m Model) Saved(id int) bool {
	return m.session.saved[id]
}
