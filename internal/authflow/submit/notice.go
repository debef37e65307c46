package submit

import "fmt"

// Level classifies a notice for display.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notice is a transient message for the user. Format is the English copy and
// doubles as the message catalog key; Args fill its %s verbs.
type Notice struct {
	Level  Level
	Format string
	Args   []string
}

// Text renders the notice in English.
func (n Notice) Text() string {
	if len(n.Args) == 0 {
		return n.Format
	}
	args := make([]any, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg
	}
	return fmt.Sprintf(n.Format, args...)
}

// Notice copy shared by the submit and profile flows.
const (
	FormatLoginSuccess     = "Success! %s"
	FormatSignupSuccess    = "%s Please Login to continue."
	FormatServerMessage    = "%s"
	FormatSessionWrite     = "Unable to save your session. Please try again."
	FormatInFlight         = "Your previous request is still being processed."
	FormatNotLoggedIn      = "You are not logged in. Please login."
	FormatProfileFetchFail = "An error occurred while fetching user details. Please try again later."
	FormatLoggedOut        = "You have been logged out."
)

// NoticeNotLoggedIn is shown when a protected page is opened without a token.
func NoticeNotLoggedIn() Notice {
	return Notice{Level: LevelError, Format: FormatNotLoggedIn}
}

// NoticeInFlight is shown when a duplicate submit is rejected.
func NoticeInFlight() Notice {
	return Notice{Level: LevelWarning, Format: FormatInFlight}
}
