package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisasterStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    DisasterStatus
		to      DisasterStatus
		allowed bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusDeclined, true},
		{StatusAccepted, StatusResolved, true},
		{StatusPending, StatusResolved, false},
		{StatusPending, StatusPending, false},
		{StatusAccepted, StatusAccepted, false},
		{StatusAccepted, StatusDeclined, false},
		{StatusAccepted, StatusPending, false},
		{StatusDeclined, StatusAccepted, false},
		{StatusDeclined, StatusPending, false},
		{StatusResolved, StatusPending, false},
		{StatusResolved, StatusAccepted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestDisasterStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusDeclined.IsTerminal())
	assert.True(t, StatusResolved.IsTerminal())
}

func TestSeverity_Rank(t *testing.T) {
	assert.Less(t, SeverityLow.Rank(), SeverityMedium.Rank())
	assert.Less(t, SeverityMedium.Rank(), SeverityHigh.Rank())
	assert.Less(t, SeverityHigh.Rank(), SeverityCritical.Rank())
	assert.Equal(t, -1, Severity("extreme").Rank())
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, DisasterFlood.IsValid())
	assert.False(t, DisasterType("tsunami").IsValid())

	assert.True(t, StatusPending.IsValid())
	assert.False(t, DisasterStatus("open").IsValid())

	assert.True(t, SeverityCritical.IsValid())
	assert.False(t, Severity("").IsValid())
}

func TestUser_HasRole(t *testing.T) {
	reporter := &User{Role: "user"}
	volunteer := &User{Role: "volunteer"}
	admin := &User{Role: "admin"}

	assert.True(t, reporter.HasRole("user"))
	assert.False(t, reporter.HasRole("volunteer"))
	assert.False(t, reporter.HasRole("admin"))

	assert.True(t, volunteer.HasRole("user"))
	assert.True(t, volunteer.HasRole("volunteer"))
	assert.False(t, volunteer.HasRole("admin"))

	assert.True(t, admin.HasRole("user"))
	assert.True(t, admin.HasRole("volunteer"))
	assert.True(t, admin.HasRole("admin"))

	assert.False(t, admin.HasRole("superuser"))
}
