// Package viewmodel holds the screen state of an interactive battlecard
// client as an explicit state machine. It performs no I/O: Dispatch returns
// the Effect the caller must carry out.
package viewmodel

import (
	"errors"
	"fmt"
)

// State names the screen currently shown.
type State string

const (
	StateGrid   State = "grid"
	StateDetail State = "detail"
	StateForm   State = "form"
	StateImport State = "import"
)

// EventKind identifies a user action or an I/O outcome.
type EventKind string

const (
	EventSelectRecord   EventKind = "select_record"
	EventCreateNew      EventKind = "create_new"
	EventEdit           EventKind = "edit"
	EventOpenImport     EventKind = "open_import"
	EventBack           EventKind = "back"
	EventSaved          EventKind = "saved"
	EventSaveFailed     EventKind = "save_failed"
	EventRequestDelete  EventKind = "request_delete"
	EventConfirmDelete  EventKind = "confirm_delete"
	EventCancelDelete   EventKind = "cancel_delete"
	EventDeleteFailed   EventKind = "delete_failed"
	EventImportFinished EventKind = "import_finished"
	EventImportFailed   EventKind = "import_failed"
	EventDismissNotice  EventKind = "dismiss_notice"
)

// Event is dispatched to a Model. RecordID is used by SelectRecord and Saved,
// Message by the outcome events.
type Event struct {
	Kind     EventKind
	RecordID string
	Message  string
}

// EffectKind tells the caller which I/O to perform after a transition.
type EffectKind string

const (
	EffectNone    EffectKind = ""
	EffectDelete  EffectKind = "delete"
	EffectRefetch EffectKind = "refetch"
)

// Effect is the I/O requested by a transition.
type Effect struct {
	Kind     EffectKind
	RecordID string
}

// NoticeLevel distinguishes success toasts from error toasts.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is the transient message shown to the user.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// ErrInvalidTransition is returned when an event is not accepted in the
// current state. The model is left unchanged.
var ErrInvalidTransition = errors.New("invalid view transition")

// Model is the complete screen state.
type Model struct {
	State         State
	SelectedID    string
	Editing       bool
	PendingDelete bool
	Notice        *Notice
}

// New returns a model showing the grid.
func New() *Model {
	return &Model{State: StateGrid}
}

// Dispatch applies ev and returns the effect the caller must perform.
func (m *Model) Dispatch(ev Event) (Effect, error) {
	if ev.Kind == EventDismissNotice {
		m.Notice = nil
		return Effect{}, nil
	}

	switch m.State {
	case StateGrid:
		return m.onGrid(ev)
	case StateDetail:
		return m.onDetail(ev)
	case StateForm:
		return m.onForm(ev)
	case StateImport:
		return m.onImport(ev)
	}
	return Effect{}, m.reject(ev)
}

func (m *Model) onGrid(ev Event) (Effect, error) {
	switch ev.Kind {
	case EventSelectRecord:
		if ev.RecordID == "" {
			return Effect{}, m.reject(ev)
		}
		m.State = StateDetail
		m.SelectedID = ev.RecordID
	case EventCreateNew:
		m.State = StateForm
		m.SelectedID = ""
		m.Editing = false
	case EventOpenImport:
		m.State = StateImport
	case EventDeleteFailed:
		m.fail(ev.Message)
	default:
		return Effect{}, m.reject(ev)
	}
	return Effect{}, nil
}

func (m *Model) onDetail(ev Event) (Effect, error) {
	switch ev.Kind {
	case EventEdit:
		m.State = StateForm
		m.Editing = true
		m.PendingDelete = false
	case EventBack:
		m.toGrid()
	case EventRequestDelete:
		m.PendingDelete = true
	case EventCancelDelete:
		if !m.PendingDelete {
			return Effect{}, m.reject(ev)
		}
		m.PendingDelete = false
	case EventConfirmDelete:
		if !m.PendingDelete {
			return Effect{}, m.reject(ev)
		}
		id := m.SelectedID
		m.toGrid()
		return Effect{Kind: EffectDelete, RecordID: id}, nil
	default:
		return Effect{}, m.reject(ev)
	}
	return Effect{}, nil
}

func (m *Model) onForm(ev Event) (Effect, error) {
	switch ev.Kind {
	case EventSaved:
		if ev.RecordID == "" {
			return Effect{}, m.reject(ev)
		}
		m.State = StateDetail
		m.SelectedID = ev.RecordID
		m.Editing = false
		m.succeed(ev.Message, "Battlecard saved")
		return Effect{Kind: EffectRefetch}, nil
	case EventSaveFailed:
		m.fail(ev.Message)
	case EventBack:
		if m.Editing {
			m.State = StateDetail
			m.Editing = false
		} else {
			m.toGrid()
		}
	default:
		return Effect{}, m.reject(ev)
	}
	return Effect{}, nil
}

func (m *Model) onImport(ev Event) (Effect, error) {
	switch ev.Kind {
	case EventImportFinished:
		m.toGrid()
		m.succeed(ev.Message, "Import finished")
		return Effect{Kind: EffectRefetch}, nil
	case EventImportFailed:
		m.fail(ev.Message)
	case EventBack:
		m.toGrid()
	default:
		return Effect{}, m.reject(ev)
	}
	return Effect{}, nil
}

func (m *Model) toGrid() {
	m.State = StateGrid
	m.SelectedID = ""
	m.Editing = false
	m.PendingDelete = false
}

func (m *Model) succeed(message, fallback string) {
	if message == "" {
		message = fallback
	}
	m.Notice = &Notice{Level: NoticeSuccess, Message: message}
}

func (m *Model) fail(message string) {
	if message == "" {
		message = "Something went wrong"
	}
	m.Notice = &Notice{Level: NoticeError, Message: message}
}

func (m *Model) reject(ev Event) error {
	return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, ev.Kind, m.State)
}
