package models

import (
	"time"

	"github.com/korjavin/introscheduler/pkg/interval"
)

// Role is the relationship a manager has with a new hire.
type Role string

const (
	RoleHiringManager    Role = "Hiring Manager"
	RoleReportingManager Role = "Reporting Manager"
	RoleHRBP             Role = "HRBP"
	RoleBuddy            Role = "Buddy"
	RoleRecruiter        Role = "Recruiter"
)

// Weekday set helpers use time.Weekday directly; Monday through Friday is
// the default working week.
var DefaultWorkingDays = map[time.Weekday]bool{
	time.Monday:    true,
	time.Tuesday:   true,
	time.Wednesday: true,
	time.Thursday:  true,
	time.Friday:    true,
}

// BusinessHours is a daily business-hour window in a participant's local
// timezone, e.g. 9:00 to 18:00.
type BusinessHours struct {
	StartHour   int `json:"start_hour"`
	StartMinute int `json:"start_minute"`
	EndHour     int `json:"end_hour"`
	EndMinute   int `json:"end_minute"`
}

// Participant is anyone whose availability constrains a meeting: the new
// hire plus the managers required to attend.
type Participant struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Timezone    string                `json:"timezone"` // IANA name, e.g. "Asia/Kolkata"
	Hours       BusinessHours         `json:"hours"`
	WorkingDays map[time.Weekday]bool `json:"working_days,omitempty"`
}

// WorksOn reports whether the participant works on the given weekday.
func (p Participant) WorksOn(day time.Weekday) bool {
	if p.WorkingDays == nil {
		return DefaultWorkingDays[day]
	}
	return p.WorkingDays[day]
}

// Location resolves the participant's IANA timezone.
func (p Participant) Location() (*time.Location, error) {
	return time.LoadLocation(p.Timezone)
}

// Candidate represents a new hire going through onboarding.
type Candidate struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	RoleTitle          string    `json:"role_title"`
	Timezone           string    `json:"timezone"`
	StartDate          time.Time `json:"start_date"`
	HiringManagerID    string    `json:"hiring_manager_id"`
	ReportingManagerID string    `json:"reporting_manager_id"`
	HRBPID             string    `json:"hrbp_id"`
}

// Participant converts the candidate into a scheduling participant with
// default business hours. New hires have no calendar yet, so they are
// assumed free during business hours.
func (c Candidate) Participant(hours BusinessHours) Participant {
	return Participant{
		ID:       c.ID,
		Name:     c.Name,
		Timezone: c.Timezone,
		Hours:    hours,
	}
}

// Manager represents a manager record from the HR system.
type Manager struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Role        Role              `json:"role"`
	Timezone    string            `json:"timezone"`
	CalendarIDs map[string]string `json:"calendar_ids"` // source name -> calendar id
}

// Participant converts the manager into a scheduling participant.
func (m Manager) Participant(hours BusinessHours) Participant {
	return Participant{
		ID:       m.ID,
		Name:     m.Name,
		Timezone: m.Timezone,
		Hours:    hours,
	}
}

// CandidateSlot is a fixed-duration meeting window valid for every listed
// participant, with a preference score assigned by the ranker.
type CandidateSlot struct {
	Window       interval.Interval `json:"window"`
	Participants []string          `json:"participants"`
	Score        float64           `json:"score"`
}

// MeetingType identifies which onboarding introduction a proposal is for.
type MeetingType string

const (
	MeetingIntroHiringManager    MeetingType = "Intro with Hiring Manager"
	MeetingIntroReportingManager MeetingType = "Intro with Reporting Manager"
	MeetingIntroHRBP             MeetingType = "Intro with HRBP"
	MeetingIntroBuddy            MeetingType = "Intro with Buddy"
)

// MeetingRequest captures one scheduling conversation's intent: which
// candidate, which counterparts, how long, by when.
type MeetingRequest struct {
	CandidateID  string      `json:"candidate_id"`
	Participants []string    `json:"participants"`
	Duration     int         `json:"duration_minutes"`
	Deadline     time.Time   `json:"deadline"`
	Type         MeetingType `json:"meeting_type"`
}
