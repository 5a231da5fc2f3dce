package session

// State is the coarse game-flow phase.
type State int

const (
	Menu State = iota
	Playing
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Menu:
		return "menu"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	}
	return "unknown"
}

// Intent is a control request from the UI.
type Intent int

const (
	StartGame Intent = iota
	Pause
	Resume
	Restart
	ExitToMenu
)

func (i Intent) String() string {
	switch i {
	case StartGame:
		return "start_game"
	case Pause:
		return "pause"
	case Resume:
		return "resume"
	case Restart:
		return "restart"
	case ExitToMenu:
		return "exit_to_menu"
	}
	return "unknown"
}

// next is the transition table. Playing to GameOver is not an intent; only a
// player death gets there.
func next(from State, in Intent) (State, bool) {
	switch {
	case in == StartGame && from == Menu:
		return Playing, true
	case in == Pause && from == Playing:
		return Paused, true
	case in == Resume && from == Paused:
		return Playing, true
	case in == Restart && from == GameOver:
		return Playing, true
	case in == ExitToMenu && from == GameOver:
		return Menu, true
	}
	return from, false
}
