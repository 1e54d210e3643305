package tui

import (
	"github.com/charmbracelet/bubbles/help"

	"github.com/calumwright/praxis/internal/adherence"
	"github.com/calumwright/praxis/internal/models"
)

type SessionState int

const (
	StateRail SessionState = iota
	StateStatus
	StateSessions
)

const tabCount = 3

// Data is one fully-evaluated snapshot of the active attempt. The model
// never computes adherence itself; it renders what the loader hands it.
type Data struct {
	PathName       string
	VacationActive bool
	PrecisionMode  models.PrecisionMode
	Summary        *adherence.Summary
	MissState      adherence.MissState
	Stats          adherence.DayCompletionStats
	Sessions       []models.Session
	BenchmarkCTA   string
}

// Loader re-evaluates the attempt, for initial load and refresh.
type Loader func() (Data, error)

type Model struct {
	load     Loader
	data     Data
	loadErr  error
	state    SessionState
	keys     KeyMap
	help     help.Model
	quitting bool
	width    int
	height   int
}

func NewModel(load Loader) Model {
	m := Model{
		load:  load,
		state: StateRail,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.refresh()
	return m
}

func (m *Model) refresh() {
	data, err := m.load()
	if err != nil {
		m.loadErr = err
		return
	}
	m.data = data
	m.loadErr = nil
}
