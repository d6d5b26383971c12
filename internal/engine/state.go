package engine

// State is per-game data owned by a rule fragment, such as check
// counters or a counting history. Board.Copy clones every state.
type State interface {
	Clone() State
}

// State returns the fragment state registered under key, or nil.
func (b *Board) State(key string) State {
	return b.states[key]
}

// resetStates replaces every fragment state with a fresh value.
func (b *Board) resetStates() {
	b.states = make(map[string]State, len(b.rules.States))
	for k, factory := range b.rules.States {
		b.states[k] = factory()
	}
}

func (b *Board) cloneStates() map[string]State {
	states := make(map[string]State, len(b.states))
	for k, s := range b.states {
		states[k] = s.Clone()
	}
	return states
}
