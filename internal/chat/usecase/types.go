package usecase

// Assistant messages appended by a turn.
const (
	DefaultMoodPrompt = "What type of movie are you in the mood for?"

	MsgActorNotFound = "Actor not found. Please check the actor's name and try again."
	MsgSearchFailed  = "Failed to fetch actor information. Please try again later."
	MsgCreditsFailed = "Failed to fetch movies with the actor. Please try again later."
	MsgChatFailed    = "Sorry, I couldn't come up with recommendations right now. Please try again later."
)
