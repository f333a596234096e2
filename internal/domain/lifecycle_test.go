package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func TestNextStatus_Table(t *testing.T) {
	tests := []struct {
		from  BookingStatus
		event BookingEvent
		want  BookingStatus
	}{
		{StatusPending, EventConfirm, StatusConfirmed},
		{StatusPending, EventReject, StatusRejected},
		{StatusPending, EventCancel, StatusCancelled},
		{StatusConfirmed, EventCancel, StatusCancelled},
		{StatusConfirmed, EventComplete, StatusCompleted},
	}

	for _, tt := range tests {
		got, err := NextStatus(tt.from, tt.event)
		require.NoError(t, err, "%s --%s-->", tt.from, tt.event)
		assert.Equal(t, tt.want, got)
	}
}

func TestNextStatus_InvalidFromLiveStates(t *testing.T) {
	_, err := NextStatus(StatusPending, EventComplete)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = NextStatus(StatusConfirmed, EventConfirm)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = NextStatus(StatusConfirmed, EventReject)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNextStatus_TerminalStatesAreFinal(t *testing.T) {
	events := []BookingEvent{EventConfirm, EventReject, EventCancel, EventComplete}

	for _, st := range TerminalStatuses {
		assert.True(t, st.IsTerminal())
		assert.False(t, st.IsLive())
		for _, ev := range events {
			_, err := NextStatus(st, ev)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s --%s-->", st, ev)
			assert.False(t, CanApply(st, ev))
		}
	}
}

func TestParseBookingStatus(t *testing.T) {
	st, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, st)

	_, err = ParseBookingStatus("in_progress")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResourceKey(t *testing.T) {
	providerID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	staffID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	assert.Equal(t, "provider:11111111-1111-1111-1111-111111111111", ProviderResource(providerID).Key())
	assert.Equal(t, "staff:22222222-2222-2222-2222-222222222222", StaffResource(providerID, staffID).Key())

	b := &Booking{ProviderID: providerID, StaffID: &staffID}
	assert.Equal(t, StaffResource(providerID, staffID).Key(), b.Resource().Key())
}

func TestStaffEligibility(t *testing.T) {
	barber := &Staff{Specialization: "haircut"}
	universal := &Staff{Specialization: "universal"}
	nails := &Staff{Specialization: "manicure"}

	assert.True(t, barber.IsEligibleFor("haircut"))
	assert.True(t, universal.IsEligibleFor("haircut"))
	assert.False(t, nails.IsEligibleFor("haircut"))

	// matching is case-sensitive
	assert.False(t, barber.IsEligibleFor("Haircut"))
	assert.False(t, (&Staff{Specialization: "Universal"}).IsEligibleFor("haircut"))
}

func TestWorkingHours_Fallbacks(t *testing.T) {
	start, end := WorkingHours(nil, nil, 9, 18)
	assert.Equal(t, []int{9, 18}, []int{start, end})

	provider := &Provider{WorkStartHour: ptr.Ptr(10), WorkEndHour: ptr.Ptr(20)}
	start, end = WorkingHours(nil, provider, 9, 18)
	assert.Equal(t, []int{10, 20}, []int{start, end})

	staff := &Staff{WorkStartHour: ptr.Ptr(12)}
	start, end = WorkingHours(staff, provider, 9, 18)
	assert.Equal(t, []int{12, 20}, []int{start, end})
}

func TestBookingPatch(t *testing.T) {
	b := &Booking{StartTime: mustTime("2030-03-04T10:00:00Z")}

	assert.True(t, BookingPatch{}.IsEmpty())
	assert.False(t, BookingPatch{Notes: ptr.Ptr("x")}.Reschedules(b))
	assert.False(t, BookingPatch{StartTime: ptr.Ptr(b.StartTime)}.Reschedules(b))
	assert.True(t, BookingPatch{StartTime: ptr.Ptr(mustTime("2030-03-04T11:00:00Z"))}.Reschedules(b))
}
