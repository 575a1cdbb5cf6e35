package session

import "time"

// Summary holds the data displayed when a session closes.
type Summary struct {
	SessionID string         `json:"session_id"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration"`
	Attempted int            `json:"attempted"`
	Correct   int            `json:"correct"`
	Accuracy  float64        `json:"accuracy"`
	Topics    []TopicSummary `json:"topics"`
}

// TopicSummary is the per-topic part of a Summary.
type TopicSummary struct {
	TopicID    string  `json:"topic_id"`
	Name       string  `json:"name"`
	Attempted  int     `json:"attempted"`
	Correct    int     `json:"correct"`
	Accuracy   float64 `json:"accuracy"`
	Invalid    int     `json:"invalid_inputs"`
	StartLevel int     `json:"start_level"`
	EndLevel   int     `json:"end_level"`
	BestLevel  int     `json:"best_level"`
}

// Summary reports per-topic results in the order topics were first used.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{
		SessionID: s.id,
		StartedAt: s.startedAt,
		Duration:  s.now().Sub(s.startedAt),
	}
	for _, id := range s.order {
		tr := s.tracks[id]
		sum.Topics = append(sum.Topics, TopicSummary{
			TopicID:    id,
			Name:       tr.Topic.Name,
			Attempted:  tr.Attempted,
			Correct:    tr.Correct,
			Accuracy:   ratio(tr.Correct, tr.Attempted),
			Invalid:    tr.InvalidInputs,
			StartLevel: tr.StartLevel,
			EndLevel:   tr.Controller.Level(),
			BestLevel:  tr.BestLevel,
		})
		sum.Attempted += tr.Attempted
		sum.Correct += tr.Correct
	}
	sum.Accuracy = ratio(sum.Correct, sum.Attempted)
	return sum
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
