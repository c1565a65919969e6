package models

import (
	"math"
	"sort"
)

// TutorHoursByType is one row of the hours aggregation, grouped by tutor and session type.
type TutorHoursByType struct {
	TutorID      string      `json:"tutor_id"`
	TutorName    string      `json:"tutor_name"`
	TutorEmail   string      `json:"tutor_email"`
	TutorColor   string      `json:"tutor_color"`
	SessionType  SessionType `json:"session_type"`
	TotalMinutes int         `json:"total_minutes"`
	TotalHours   float64     `json:"total_hours"`
	SessionCount int         `json:"session_count"`
}

type SessionTypeHours struct {
	SessionType  SessionType `json:"session_type"`
	TotalMinutes int         `json:"total_minutes"`
	TotalHours   float64     `json:"total_hours"`
	SessionCount int         `json:"session_count"`
}

// TutorHoursSummary rolls every session type of one tutor into totals.
type TutorHoursSummary struct {
	TutorID       string             `json:"tutor_id"`
	TutorName     string             `json:"tutor_name"`
	TutorEmail    string             `json:"tutor_email"`
	TutorColor    string             `json:"tutor_color"`
	SessionTypes  []SessionTypeHours `json:"session_types"`
	TotalMinutes  int                `json:"total_minutes"`
	TotalHours    float64            `json:"total_hours"`
	TotalSessions int                `json:"total_sessions"`
}

// HoursFromMinutes converts minutes to hours rounded to two decimals.
func HoursFromMinutes(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}

// SummarizeHours groups rows per tutor, ordered by total hours descending then name.
func SummarizeHours(rows []TutorHoursByType) []TutorHoursSummary {
	index := make(map[string]int)
	summaries := make([]TutorHoursSummary, 0)
	for _, row := range rows {
		i, ok := index[row.TutorID]
		if !ok {
			i = len(summaries)
			index[row.TutorID] = i
			summaries = append(summaries, TutorHoursSummary{
				TutorID:      row.TutorID,
				TutorName:    row.TutorName,
				TutorEmail:   row.TutorEmail,
				TutorColor:   row.TutorColor,
				SessionTypes: []SessionTypeHours{},
			})
		}
		s := &summaries[i]
		s.SessionTypes = append(s.SessionTypes, SessionTypeHours{
			SessionType:  row.SessionType,
			TotalMinutes: row.TotalMinutes,
			TotalHours:   HoursFromMinutes(row.TotalMinutes),
			SessionCount: row.SessionCount,
		})
		s.TotalMinutes += row.TotalMinutes
		s.TotalSessions += row.SessionCount
	}
	for i := range summaries {
		summaries[i].TotalHours = HoursFromMinutes(summaries[i].TotalMinutes)
	}
	sort.SliceStable(summaries, func(a, b int) bool {
		if summaries[a].TotalMinutes != summaries[b].TotalMinutes {
			return summaries[a].TotalMinutes > summaries[b].TotalMinutes
		}
		return summaries[a].TutorName < summaries[b].TutorName
	})
	return summaries
}
