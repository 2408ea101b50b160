package handlers

// Ограничения пользовательского ввода
const (
	NotesMaxLength     = 500
	SearchMinLength    = 2
	SearchMaxLength    = 100
	BroadcastMaxLength = 3500
	PhoneMaxLength     = 32
)
