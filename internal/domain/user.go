package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	CreatedAt  time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle               UserState = "idle"
	StateWaitingFolderName  UserState = "waiting_folder_name"
	StateWaitingWord        UserState = "waiting_word"
	StateWaitingTranslation UserState = "waiting_translation"
	StateWaitingArticleURL  UserState = "waiting_article_url"
	StateWaitingPinURL      UserState = "waiting_pin_url"
	StateWaitingPhoto       UserState = "waiting_photo"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State       UserState
	FolderID    string // Folder the user has open
	CurrentWord string
}
