package chat

import (
	"fmt"
	"sync"
	"time"

	"edu-messenger/utils"
)

// Activity is one diagnostic record
type Activity struct {
	Timestamp   time.Time
	Description string
}

func (a Activity) String() string {
	return fmt.Sprintf("[%s] %s", a.Timestamp.Format("15:04:05"), a.Description)
}

// ActivityLog is the append-only, in-memory operation log shown in the
// logs panel. It grows for the life of the process.
type ActivityLog struct {
	mu      sync.RWMutex
	entries []Activity
	logger  *utils.Logger
	now     func() time.Time
}

// NewActivityLog creates an empty log; each record is mirrored to logger
func NewActivityLog(logger *utils.Logger) *ActivityLog {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &ActivityLog{logger: logger, now: time.Now}
}

// Record appends a timestamped entry
func (l *ActivityLog) Record(description string) Activity {
	entry := Activity{Timestamp: l.now(), Description: description}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	l.logger.Debug("activity: %s", description)
	return entry
}

// Entries returns a copy of the log, most recent last
func (l *ActivityLog) Entries() []Activity {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Activity, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of records
func (l *ActivityLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
