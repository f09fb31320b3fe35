package dashboard

import (
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"treehealth/internal/domain/value"
	"treehealth/pkg/errcodes"
)

// Selection то, что сейчас выбрано в двух группах радиокнопок.
type Selection struct {
	Borough value.Borough
	Mode    value.AnalysisMode
}

func DefaultSelection() Selection {
	return Selection{
		Borough: value.BoroughQueens,
		Mode:    value.ModeTotalHealth,
	}
}

// State выбор и порядковый номер последнего принятого события. Seq
// начинается с нуля и не уменьшается.
type State struct {
	Selection Selection
	Seq       uint64
}

func DefaultState() State {
	return State{Selection: DefaultSelection()}
}

type EventKind int

const (
	EventBoroughSelected EventKind = iota + 1
	EventModeSelected
	// EventRefresh пересчитывает график для того же выбора.
	EventRefresh
)

func (k EventKind) String() string {
	switch k {
	case EventBoroughSelected:
		return "borough-selected"
	case EventModeSelected:
		return "mode-selected"
	case EventRefresh:
		return "refresh"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

type Event struct {
	Kind  EventKind
	Value string
}

func BoroughSelected(b string) Event {
	return Event{Kind: EventBoroughSelected, Value: b}
}

func ModeSelected(m string) Event {
	return Event{Kind: EventModeSelected, Value: m}
}

func Refresh() Event {
	return Event{Kind: EventRefresh}
}

// Update применяет ev к state. Каждое принятое событие увеличивает Seq, даже
// повторный выбор текущего значения. Отклоненное событие возвращает state
// без изменений.
func Update(state State, ev Event) (State, error) {
	next := state

	switch ev.Kind {
	case EventBoroughSelected:
		b, err := value.ParseBorough(ev.Value)
		if err != nil {
			return state, failure.NewInvalidArgumentErrorFromError(
				err,
				failure.WithCode(errcodes.InvalidBorough),
				failure.WithDescription(fmt.Sprintf("Unknown borough %q", ev.Value)),
			)
		}

		next.Selection.Borough = b
	case EventModeSelected:
		m, err := value.ParseAnalysisMode(ev.Value)
		if err != nil {
			return state, failure.NewInvalidArgumentErrorFromError(
				err,
				failure.WithCode(errcodes.InvalidAnalysisMode),
				failure.WithDescription(fmt.Sprintf("Unknown analysis mode %q", ev.Value)),
			)
		}

		next.Selection.Mode = m
	case EventRefresh:
	default:
		return state, failure.NewInvalidArgumentError(
			"unknown event "+ev.Kind.String(),
			failure.WithCode(errcodes.ValidationError),
		)
	}

	next.Seq++

	return next, nil
}
