package domain

// Default scheduling values, used when neither config nor provider overrides them
const (
	DefaultSlotStepMinutes         = 30
	DefaultWorkStartHour           = 9
	DefaultWorkEndHour             = 18
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
)

// Business validation constants
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 240
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinBookingNoticeMinutes     = 0
	MaxBookingNoticeMinutes     = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxRejectionReasonLength    = 500
	DefaultListLimit            = 50
	MaxListLimit                = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	DateTimeFormat = "2006-01-02 15:04"
)

// LiveStatuses statuses that occupy a resource
// Used by the overlap queries and the exclusion constraint
var LiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses statuses that never change again
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusRejected,
}
