package game

const (
	// MsgPressStart is sent while no game is active and the input is not a start token
	MsgPressStart = `Tap "start" to play!`

	// MsgPardon is sent when a binary-choice prompt gets an unrecognized reply
	MsgPardon = "Pardon?"

	// MsgGuessFormat wraps the name of the guessed solution
	MsgGuessFormat = "Are you thinking of\n\n%s\n\n?"

	// MsgSuccess is sent when the player confirms the guess
	MsgSuccess = "Yay, got it!"

	// MsgCommiserate is sent when the player rejects the guess
	MsgCommiserate = "Aww..."

	// MsgContinue asks whether to keep playing after a wrong guess
	MsgContinue = "Shall we keep going?"

	// MsgGiveUp is sent when the player stops after a wrong guess
	MsgGiveUp = "Okay, sorry about that..."

	// MsgStumped is the fallback for a turn that failed with a hard error
	MsgStumped = "I'm stumped. Let's start over."
)
