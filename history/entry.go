package history

import (
	"fmt"
	"time"
)

// Entry is one remembered media.
type Entry struct {
	Locator    string    `json:"locator"`
	Title      string    `json:"title"`
	Plays      int       `json:"plays"`
	Position   float32   `json:"position"`
	LastPlayed time.Time `json:"last_played"`
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s (%d plays, %.0f%%)", e.Title, e.Plays, e.Position*100)
}
