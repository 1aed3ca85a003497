package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"uketsuke/internal/config"
	"uketsuke/internal/log"
	"uketsuke/internal/pubsub"
	"uketsuke/internal/roster"
	"uketsuke/internal/roster/match"
	"uketsuke/internal/tabular"
	"uketsuke/internal/ui/modal"
	"uketsuke/internal/ui/picker"
	"uketsuke/internal/ui/toaster"
	"uketsuke/internal/watcher"
)

// importResultMsg carries the outcome of an asynchronous file read.
// Gen identifies the import request; a stale Gen means a newer import
// superseded this one and the result is discarded.
type importResultMsg struct {
	Gen    int
	Path   string
	Result tabular.ParseResult
	Err    error
}

// exportResultMsg carries the outcome of an export write.
type exportResultMsg struct {
	Filename string
	Err      error
}

// importCmd reads and parses a roster file off the event loop.
func importCmd(path, noPreference string, gen int) tea.Cmd {
	return func() tea.Msg {
		cells, err := tabular.ReadFile(path)
		if err != nil {
			return importResultMsg{Gen: gen, Path: path, Err: err}
		}
		result, err := tabular.Parse(cells, noPreference)
		return importResultMsg{Gen: gen, Path: path, Result: result, Err: err}
	}
}

// exportCmd writes the rows to the dated file in the working directory.
func exportCmd(rows [][]string, format tabular.Format) tea.Cmd {
	return func() tea.Msg {
		name := tabular.ExportFilename(format, time.Now())
		if err := tabular.WriteFile(name, rows); err != nil {
			return exportResultMsg{Filename: name, Err: err}
		}
		return exportResultMsg{Filename: name}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.setSize(msg.Width, msg.Height), nil

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case importResultMsg:
		return m.handleImportResult(msg)

	case exportResultMsg:
		if msg.Err != nil {
			log.ErrorErr(log.CatTabular, "export failed", msg.Err)
			return m.toast("書き出しに失敗しました: "+msg.Err.Error(), toaster.Error)
		}
		return m.toast(msg.Filename+" に書き出しました", toaster.Success)

	case pubsub.Event[roster.Change]:
		m.board = m.board.SetStats(m.store.Stats(), m.store.AbsentRecords())
		return m, m.storeListener.Listen()

	case pubsub.Event[watcher.Event]:
		if m.watcherListener == nil {
			return m, nil
		}
		log.Info(log.CatWatcher, "roster file changed, re-importing", "path", msg.Payload.Path)
		m.importGen++
		return m, tea.Batch(
			importCmd(msg.Payload.Path, m.cfg.NoPreferenceProgram, m.importGen),
			m.watcherListener.Listen(),
		)

	case modal.SubmitMsg:
		return m.handleModalSubmit(msg)

	case modal.CancelMsg:
		m.overlay = overlayNone
		return m, nil

	case picker.SubmitMsg:
		return m.handlePickerSubmit(msg)

	case picker.CancelMsg:
		m.overlay = overlayNone
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayHelp:
		if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Help) {
			m.overlay = overlayNone
		}
		return m, nil
	case overlayWalkIn, overlayCapacity, overlayCapacityPersist, overlayImport:
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	case overlayWalkInProgram, overlayReassign:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil

	case key.Matches(msg, m.keys.Import):
		return m.openImportPrompt()

	case key.Matches(msg, m.keys.Export):
		rows := tabular.ExportRows(m.store.Records(), m.cfg.Schema())
		return m, exportCmd(rows, tabular.FormatCSV)

	case key.Matches(msg, m.keys.AddGuest):
		return m.openWalkInForm()

	case key.Matches(msg, m.keys.NextProgram):
		m.board = m.board.FocusNext()
		return m, nil

	case key.Matches(msg, m.keys.PrevProgram):
		m.board = m.board.FocusPrev()
		return m, nil

	case key.Matches(msg, m.keys.EditMax):
		return m.openCapacityEditor()

	case key.Matches(msg, m.keys.MarkPresent):
		return m.markSelected(roster.Present)

	case key.Matches(msg, m.keys.MarkAbsent):
		return m.markSelected(roster.Absent)

	case key.Matches(msg, m.keys.Reassign):
		return m.openReassignPicker()

	case key.Matches(msg, m.keys.Up):
		if m.sugg.Len() > 0 {
			m.sugg, _ = m.sugg.Update(msg)
		} else if m.results.Len() > 0 {
			m.results = m.results.CursorUp()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.sugg.Len() > 0 {
			m.sugg, _ = m.sugg.Update(msg)
		} else if m.results.Len() > 0 {
			m.results = m.results.CursorDown()
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m.runSearch()

	case key.Matches(msg, m.keys.Escape):
		m.sugg.Clear()
		m.results = m.results.Clear()
		m.noMatches = false
		m.board = m.board.Blur()
		return m, nil
	}

	// Everything else edits the query.
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.results = m.results.Clear()
		m.noMatches = false
		if v == "" {
			m.sugg.Clear()
		} else {
			m.sugg.SetResults(match.Suggest(m.store.Records(), v))
		}
	}
	return m, cmd
}

// runSearch resolves Enter: a highlighted suggestion searches that
// record's name, otherwise the raw query is searched in full.
func (m Model) runSearch() (tea.Model, tea.Cmd) {
	query := m.search.Value()
	if sel := m.sugg.Selected(); sel != nil {
		query = sel.DisplayName()
		m.search.SetValue(query)
	}
	m.sugg.Clear()
	if strings.TrimSpace(query) == "" {
		return m, nil
	}

	m.searchQuery = query
	results := match.Search(m.store.Records(), query)
	log.Debug(log.CatMatch, "search", "query", query, "hits", len(results))
	if len(results) == 0 {
		m.noMatches = true
		m.results = m.results.Clear()
		return m, nil
	}
	m.noMatches = false
	m.results = m.results.SetResults(results)
	return m, nil
}

// markSelected applies an attendance change to the result under the
// cursor.
func (m Model) markSelected(state roster.Attendance) (tea.Model, tea.Cmd) {
	rec := m.results.Selected()
	if rec == nil {
		return m, nil
	}
	if err := m.store.SetAttendance(rec.ID, state); err != nil {
		return m.toast(err.Error(), toaster.Error)
	}
	label := tabular.AttendanceLabel(state)
	return m.toast(fmt.Sprintf("%sを%sにしました", rec.DisplayName(), label), toaster.Success)
}

// openWalkInForm opens the registration modal, pre-filling the name
// field the query's script points at: katakana or hiragana input seeds
// the kana field (hiragana folded), anything else the kanji field.
func (m Model) openWalkInForm() (tea.Model, tea.Cmd) {
	var kanji, kana string
	switch q := strings.TrimSpace(m.search.Value()); {
	case match.ContainsKatakana(q):
		kana = q
	case match.ContainsHiragana(q):
		kana = match.FoldHiragana(q)
	default:
		kanji = q
	}

	m.modal = modal.New(modal.Config{
		Title: "新規参加者の登録",
		Inputs: []modal.InputConfig{
			{Key: "kanji", Label: "名前（漢字）", Placeholder: "山田 太郎", Value: kanji},
			{Key: "kana", Label: "名前（カナ）", Placeholder: "ヤマダ タロウ", Value: kana},
		},
		SubmitLabel: "次へ",
		Validate: func(values map[string]string) error {
			if values["kanji"] == "" && values["kana"] == "" {
				return fmt.Errorf("名前を入力してください")
			}
			return nil
		},
	}).SetSize(m.width, m.height)
	m.overlay = overlayWalkIn
	return m, m.modal.Init()
}

// openCapacityEditor opens the numeric capacity modal for the focused
// program card.
func (m Model) openCapacityEditor() (tea.Model, tea.Cmd) {
	st := m.board.Focused()
	if st == nil {
		return m.toast("tabでプログラムを選択してください", toaster.Info)
	}
	m.modal = modal.New(modal.Config{
		Title:   st.Program.Name,
		Message: fmt.Sprintf("現在の定員: %d人", st.Program.MaxMembers),
		Inputs: []modal.InputConfig{
			{Key: "max", Label: "新しい定員", Value: strconv.Itoa(st.Program.MaxMembers), CharLimit: 4},
		},
		Validate: func(values map[string]string) error {
			if _, err := strconv.Atoi(values["max"]); err != nil {
				return fmt.Errorf("数値を入力してください")
			}
			return nil
		},
	}).SetSize(m.width, m.height)
	m.overlay = overlayCapacity
	return m, m.modal.Init()
}

// openImportPrompt asks for a roster file path.
func (m Model) openImportPrompt() (tea.Model, tea.Cmd) {
	m.modal = modal.New(modal.Config{
		Title: "名簿ファイルの読み込み",
		Inputs: []modal.InputConfig{
			{Key: "path", Label: "ファイルパス (.csv / .xlsx)", Value: m.lastImport},
		},
		SubmitLabel: "読み込み",
		Validate: func(values map[string]string) error {
			if _, err := os.Stat(values["path"]); err != nil {
				return fmt.Errorf("ファイルが見つかりません")
			}
			return nil
		},
	}).SetSize(m.width, m.height)
	m.overlay = overlayImport
	return m, m.modal.Init()
}

// openReassignPicker opens the program picker for the selected result.
func (m Model) openReassignPicker() (tea.Model, tea.Cmd) {
	rec := m.results.Selected()
	if rec == nil {
		return m, nil
	}
	m.reassignID = rec.ID
	m.picker = picker.New("プログラム変更", m.programOptions(rec.Program)).
		SetSize(m.width, m.height).
		SetSelectedValue(rec.Program)
	m.overlay = overlayReassign
	return m, nil
}

// programOptions builds picker entries from current stats. Full
// programs are disabled unless they are the record's current one.
func (m Model) programOptions(current string) []picker.Option {
	stats := m.store.Stats()
	options := make([]picker.Option, 0, len(stats))
	for _, st := range stats {
		options = append(options, picker.Option{
			Label: picker.ProgramLabel(st.Program.ID, st.Program.Name,
				st.Present, st.Program.MaxMembers, st.Total),
			Value:    st.Program.Name,
			Disabled: st.Full() && st.Program.Name != current,
		})
	}
	return options
}

func (m Model) handleModalSubmit(msg modal.SubmitMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayWalkIn:
		m.walkInKanji = msg.Values["kanji"]
		m.walkInKana = msg.Values["kana"]
		m.picker = picker.New("参加プログラム", m.programOptions("")).
			SetSize(m.width, m.height)
		m.overlay = overlayWalkInProgram
		return m, nil

	case overlayCapacity:
		st := m.board.Focused()
		if st == nil {
			m.overlay = overlayNone
			return m, nil
		}
		newMax, _ := strconv.Atoi(msg.Values["max"])
		if err := m.store.SetCapacity(st.Program.Name, newMax); err != nil {
			m.overlay = overlayNone
			return m.toast(err.Error(), toaster.Warn)
		}
		m.modal = modal.New(modal.Config{
			Title:       "定員を変更しました",
			Message:     "設定ファイルに保存しますか？",
			SubmitLabel: "保存",
		}).SetSize(m.width, m.height)
		m.overlay = overlayCapacityPersist
		return m, nil

	case overlayCapacityPersist:
		m.overlay = overlayNone
		if err := config.SaveCapacities(m.configPath, m.store.Programs()); err != nil {
			log.ErrorErr(log.CatConfig, "saving capacities failed", err)
			return m.toast("設定の保存に失敗しました: "+err.Error(), toaster.Error)
		}
		return m.toast("設定ファイルに保存しました", toaster.Success)

	case overlayImport:
		m.overlay = overlayNone
		m.importGen++
		return m, importCmd(msg.Values["path"], m.cfg.NoPreferenceProgram, m.importGen)
	}

	m.overlay = overlayNone
	return m, nil
}

func (m Model) handlePickerSubmit(msg picker.SubmitMsg) (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayWalkInProgram:
		m.overlay = overlayNone
		rec, err := m.store.AddWalkIn(m.walkInKanji, m.walkInKana, msg.Value)
		if err != nil {
			style := toaster.Error
			if roster.IsKind(err, roster.ErrKindCapacity) {
				style = toaster.Warn
			}
			return m.toast(err.Error(), style)
		}
		m.search.Reset()
		m.sugg.Clear()
		m.noMatches = false
		return m.toast(fmt.Sprintf("%sを%sに登録しました", rec.DisplayName(), msg.Value), toaster.Success)

	case overlayReassign:
		m.overlay = overlayNone
		if err := m.store.Reassign(m.reassignID, msg.Value); err != nil {
			style := toaster.Error
			if roster.IsKind(err, roster.ErrKindCapacity) {
				style = toaster.Warn
			}
			return m.toast(err.Error(), style)
		}
		rec := m.store.FindByID(m.reassignID)
		name := ""
		if rec != nil {
			name = rec.DisplayName()
		}
		return m.toast(fmt.Sprintf("%sを%sに移動しました", name, msg.Value), toaster.Success)
	}

	m.overlay = overlayNone
	return m, nil
}

func (m Model) handleImportResult(msg importResultMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.importGen {
		log.Debug(log.CatTabular, "discarding superseded import", "gen", msg.Gen, "current", m.importGen)
		return m, nil
	}
	if msg.Err != nil {
		log.ErrorErr(log.CatTabular, "import failed", msg.Err, "path", msg.Path)
		return m.toast("読み込みに失敗しました: "+msg.Err.Error(), toaster.Error)
	}

	count := m.store.ImportBatch(msg.Result.Rows)
	m.lastImport = msg.Path
	m.results = m.results.Clear()
	m.sugg.Clear()
	m.noMatches = false

	model, watchCmd := m.ensureWatcher(msg.Path)
	m = model

	text := fmt.Sprintf("%d件読み込みました", count)
	if msg.Result.Skipped > 0 {
		text = fmt.Sprintf("%d件読み込みました（%d件スキップ）", count, msg.Result.Skipped)
	}
	toasted, toastCmd := m.toastModel(text, toaster.Success)
	return toasted, tea.Batch(watchCmd, toastCmd)
}

// ensureWatcher (re)targets the auto-reload watcher at the imported
// file. Watcher failures are non-fatal; the desk just loses
// auto-reload.
func (m Model) ensureWatcher(path string) (Model, tea.Cmd) {
	if !m.cfg.AutoReload {
		return m, nil
	}
	if m.watcherHandle != nil && m.watcherHandle.Path() == path {
		return m, nil
	}

	if m.watcherCancel != nil {
		m.watcherCancel()
		_ = m.watcherHandle.Stop()
		m.watcherHandle = nil
		m.watcherListener = nil
	}

	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.Warn(log.CatWatcher, "watcher init failed", "error", err)
		return m, nil
	}
	if err := w.Start(); err != nil {
		log.Warn(log.CatWatcher, "watcher start failed", "error", err)
		_ = w.Stop()
		return m, nil
	}
	m.watcherHandle = w
	m.watcherCtx, m.watcherCancel = context.WithCancel(context.Background())
	m.watcherListener = pubsub.NewContinuousListener(m.watcherCtx, w.Broker())
	return m, m.watcherListener.Listen()
}

// toast shows a transient message. The tea.Model return suits handler
// tails; toastModel keeps the concrete type.
func (m Model) toast(text string, style toaster.Style) (tea.Model, tea.Cmd) {
	return m.toastModel(text, style)
}

func (m Model) toastModel(text string, style toaster.Style) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(text, style)
	return m, cmd
}
