// Package model содержит доменные структуры для кружков и их участников
package model

// Activity описывает кружок: расписание, вместимость и упорядоченный список участников (email).
type Activity struct {
	Name            string   `json:"-" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	Participants    []string `json:"participants" yaml:"participants"`
}

// SpotsLeft возвращает число свободных мест. Значение не ограничивается снизу:
// если сервер вернул участников больше, чем max_participants, результат будет отрицательным.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// HasParticipant сообщает, записан ли email на кружок.
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// Clone возвращает копию кружка с собственным слайсом участников.
func (a Activity) Clone() Activity {
	c := a
	c.Participants = append(make([]string, 0, len(a.Participants)), a.Participants...)
	return c
}
