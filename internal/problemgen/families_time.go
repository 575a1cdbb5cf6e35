package problemgen

import (
	"fmt"

	"github.com/abhisek/mathdrill/internal/answer"
)

var activities = []string{"read", "practiced piano", "played outside", "worked on a puzzle"}

func timeTemplates() []Template {
	return []Template{
		timeAdd("time-add", "Add durations", false),
		timeAdd("time-add-regroup", "Add durations with regrouping", true),
		timeSubtract("time-subtract", "Subtract durations", false),
		timeSubtract("time-subtract-borrow", "Subtract durations with borrowing", true),
		timeAddHours(),
	}
}

// addDurations returns h1:m1 + h2:m2 with minutes regrouped into hours.
func addDurations(h1, m1, h2, m2 int64) (int64, int64) {
	m := m1 + m2
	return h1 + h2 + m/60, m % 60
}

// subtractDurations returns h1:m1 - h2:m2, borrowing an hour as 60
// minutes when m1 < m2.
func subtractDurations(h1, m1, h2, m2 int64) (int64, int64) {
	if m1 < m2 {
		h1--
		m1 += 60
	}
	return h1 - h2, m1 - m2
}

func timeAdd(id, title string, regroup bool) Template {
	rule := "no regrouping"
	if regroup {
		rule = "minutes regroup"
	}
	return Template{
		ID:    id,
		Title: title,
		Slots: []Slot{
			{Name: "name", Domain: Words(learnerNames...), Format: FormatText},
			{Name: "activity", Domain: Words(activities...), Format: FormatText},
			{Name: "h1", Domain: Range(1, 3)},
			{Name: "m1", Domain: RangeStep(5, 55, 5)},
			{Name: "h2", Domain: Range(1, 3)},
			{Name: "m2", Domain: RangeStep(5, 55, 5)},
		},
		Constraints: []Constraint{{Name: rule, Check: func(p Params) bool {
			return (p.Int("m1")+p.Int("m2") >= 60) == regroup
		}}},
		Adjust: func(p Params) {
			m1, m2 := p.Int("m1"), p.Int("m2")
			switch sum := m1 + m2; {
			case regroup == (sum < 60) && sum != 60:
				// 60-m maps 5..55 onto itself and flips which side of
				// the hour the sum falls on.
				p.Ints["m1"], p.Ints["m2"] = 60-m1, 60-m2
			case !regroup && sum == 60:
				if m2 > 5 {
					p.Ints["m2"] = m2 - 5
				} else {
					p.Ints["m1"] = m1 - 5
				}
			}
		},
		Prompt: "{name} {activity} for {h1} hours {m1} minutes in the morning and {h2} hours {m2} minutes in the afternoon. How long is that in all? Answer in hours and minutes.",
		Solve: func(p Params) answer.Answer {
			h, m := addDurations(p.Int("h1"), p.Int("m1"), p.Int("h2"), p.Int("m2"))
			return answer.Composite(hoursMinutes, h, m)
		},
		Explain: func(p Params) string {
			h1, m1, h2, m2 := p.Int("h1"), p.Int("m1"), p.Int("h2"), p.Int("m2")
			h, m := addDurations(h1, m1, h2, m2)
			if m1+m2 < 60 {
				return fmt.Sprintf("Add the hours: %d + %d = %d. Add the minutes: %d + %d = %d. The total is %s.",
					h1, h2, h1+h2, m1, m2, m1+m2, hm(h, m))
			}
			return fmt.Sprintf("Add the hours: %d + %d = %d. Add the minutes: %d + %d = %d minutes, which is 1 h %d min. Regroup: %d h + 1 h %d min = %s.",
				h1, h2, h1+h2, m1, m2, m1+m2, m1+m2-60, h1+h2, m1+m2-60, hm(h, m))
		},
	}
}

func timeSubtract(id, title string, borrow bool) Template {
	rule := "no borrowing"
	if borrow {
		rule = "borrowing required"
	}
	return Template{
		ID:    id,
		Title: title,
		Slots: []Slot{
			{Name: "name", Domain: Words(learnerNames...), Format: FormatText},
			{Name: "h1", Domain: Range(2, 5)},
			{Name: "m1", Domain: RangeStep(0, 55, 5)},
			{Name: "h2", Domain: Range(1, 4)},
			{Name: "m2", Domain: RangeStep(0, 55, 5)},
		},
		Constraints: []Constraint{
			{Name: "longer duration first", Check: func(p Params) bool { return p.Int("h1") > p.Int("h2") }},
			{Name: rule, Check: func(p Params) bool { return (p.Int("m1") < p.Int("m2")) == borrow }},
		},
		Adjust: func(p Params) {
			if h1, h2 := p.Int("h1"), p.Int("h2"); h2 >= h1 {
				p.Ints["h2"] = 1 + (h2-1)%(h1-1)
			}
			m1, m2 := p.Int("m1"), p.Int("m2")
			switch {
			case borrow && m1 == m2:
				if m2 < 55 {
					p.Ints["m2"] = m2 + 5
				} else {
					p.Ints["m1"] = m1 - 5
				}
			case (m1 < m2) != borrow:
				p.Ints["m1"], p.Ints["m2"] = m2, m1
			}
		},
		Prompt: "A movie is {h1} hours {m1} minutes long. {name} has watched {h2} hours {m2} minutes of it. How much of the movie is left? Answer in hours and minutes.",
		Solve: func(p Params) answer.Answer {
			h, m := subtractDurations(p.Int("h1"), p.Int("m1"), p.Int("h2"), p.Int("m2"))
			return answer.Composite(hoursMinutes, h, m)
		},
		Explain: func(p Params) string {
			h1, m1, h2, m2 := p.Int("h1"), p.Int("m1"), p.Int("h2"), p.Int("m2")
			h, m := subtractDurations(h1, m1, h2, m2)
			if m1 >= m2 {
				return fmt.Sprintf("Subtract the minutes: %d - %d = %d. Subtract the hours: %d - %d = %d. The answer is %s.",
					m1, m2, m1-m2, h1, h2, h1-h2, hm(h, m))
			}
			return fmt.Sprintf("%d min is less than %d min, so borrow 1 hour: %s = %s. Then %s - %s = %s.",
				m1, m2, hm(h1, m1), hm(h1-1, m1+60), hm(h1-1, m1+60), hm(h2, m2), hm(h, m))
		},
	}
}

func timeAddHours() Template {
	return Template{
		ID:    "time-add-hours",
		Title: "Add whole hours",
		Slots: []Slot{
			{Name: "name", Domain: Words(learnerNames...), Format: FormatText},
			{Name: "activity", Domain: Words(activities...), Format: FormatText},
			{Name: "h1", Domain: Range(1, 5)},
			{Name: "h2", Domain: Range(1, 5)},
		},
		Prompt: "{name} {activity} for {h1} hours on Saturday and {h2} hours on Sunday. How long is that in all? Answer in hours and minutes.",
		Solve: func(p Params) answer.Answer {
			return answer.Composite(hoursMinutes, p.Int("h1")+p.Int("h2"), 0)
		},
		Explain: func(p Params) string {
			h1, h2 := p.Int("h1"), p.Int("h2")
			return fmt.Sprintf("Add the hours: %d + %d = %d. There are no extra minutes, so the total is %s.", h1, h2, h1+h2, hm(h1+h2, 0))
		},
	}
}
