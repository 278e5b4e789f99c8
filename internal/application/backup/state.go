package backup

// State es un estado de la máquina del restore:
// Idle → Validating → Deleting(c)… → Writing(c)… → Done, con Failed desde cualquier estado.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateDeleting   State = "deleting"
	StateWriting    State = "writing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Terminal indica si no hay transiciones posibles desde s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Transition es un cambio de estado del restore. Collection se informa en Deleting y
// Writing, y en Failed cuando la falla ocurrió en una colección.
type Transition struct {
	State      State
	Collection string
	Documents  int
	Err        error
}

// Observer recibe las transiciones del restore en orden. No debe bloquear.
type Observer interface {
	OnTransition(Transition)
}

// ObserverFunc adapta una función a Observer.
type ObserverFunc func(Transition)

func (f ObserverFunc) OnTransition(t Transition) { f(t) }

// canTransition valida el grafo de estados.
func canTransition(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	switch from {
	case StateIdle:
		return to == StateValidating
	case StateValidating:
		return to == StateDeleting
	case StateDeleting:
		return to == StateDeleting || to == StateWriting || to == StateDone
	case StateWriting:
		return to == StateWriting || to == StateDone
	}
	return false
}
