package model

import "time"

const (
	DefaultStudyMinutes = 25
	DefaultBreakMinutes = 5
)

type PomodoroSettings struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	StudyTime int       `json:"studyTime"`
	BreakTime int       `json:"breakTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
