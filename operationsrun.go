package dfamin

// Run Returns true if a, started in its start state, ends in an accept state after consuming input
// symbol by symbol. A missing transition or unknown symbol rejects.
func Run(a *Automaton, input []string) bool {
	state := a.Start()
	if state == -1 {
		return false
	}
	for _, symbol := range input {
		nextState, ok := a.Transition(state, symbol)
		if !ok {
			return false
		}
		state = nextState
	}
	return a.IsAccept(state)
}
