package client

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Status — состояние области сообщений.
type Status struct {
	Text    string
	Kind    string // success, error или пусто, пока ничего не показывали
	Visible bool
}

// RosterEntry — запись списка участников с кнопкой удаления.
type RosterEntry struct {
	Activity string
	Email    string
	Control  *html.Node
}

// Card — то, что видно на карточке кружка.
type Card struct {
	Name         string
	Description  string
	Schedule     string
	Availability string
	SpotsLeft    int
	Roster       []RosterEntry
	// Placeholder — текст заглушки при пустом списке участников.
	Placeholder string
}

// Status возвращает текущее состояние области сообщений.
func (c *ActivityClient) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		Text:    textContent(c.message),
		Visible: !hasClass(c.message, classHidden),
	}
	switch {
	case hasClass(c.message, classSuccess):
		st.Kind = classSuccess
	case hasClass(c.message, classError):
		st.Kind = classError
	}
	return st
}

// Cards разбирает отрисованные карточки обратно в структуру.
func (c *ActivityClient) Cards() []Card {
	c.mu.Lock()
	defer c.mu.Unlock()

	var cards []Card
	for _, n := range findAll(c.list, withClass("activity-card")) {
		cards = append(cards, readCard(n))
	}
	return cards
}

func readCard(n *html.Node) Card {
	var card Card

	if h := findAll(n, isElement(atom.H4)); len(h) > 0 {
		card.Name = textContent(h[0])
	}

	var paragraphs []string
	for _, p := range findAll(n, isElement(atom.P)) {
		if hasClass(p, "participants-title") {
			continue
		}
		paragraphs = append(paragraphs, textContent(p))
	}
	for _, text := range paragraphs {
		switch {
		case strings.HasPrefix(text, "Schedule:"):
			card.Schedule = strings.TrimSpace(strings.TrimPrefix(text, "Schedule:"))
		case strings.HasPrefix(text, "Availability:"):
			card.Availability = strings.TrimSpace(strings.TrimPrefix(text, "Availability:"))
			if fields := strings.Fields(card.Availability); len(fields) > 0 {
				card.SpotsLeft, _ = strconv.Atoi(fields[0])
			}
		case card.Description == "":
			card.Description = text
		}
	}

	for _, li := range findAll(n, isElement(atom.Li)) {
		if hasClass(li, "no-participants") {
			card.Placeholder = textContent(li)
			continue
		}
		entry := RosterEntry{}
		entry.Activity, _ = attr(li, attrActivity)
		entry.Email, _ = attr(li, attrEmail)
		if controls := findAll(li, withClass(classRemovalControl)); len(controls) > 0 {
			entry.Control = controls[0]
		}
		card.Roster = append(card.Roster, entry)
	}

	return card
}

// Options возвращает значения пунктов выпадающего списка кружков, включая заглушку.
func (c *ActivityClient) Options() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var values []string
	for _, opt := range findAll(c.selectEl, isElement(atom.Option)) {
		v, _ := attr(opt, "value")
		values = append(values, v)
	}
	return values
}

// ListText возвращает видимый текст области списка кружков.
func (c *ActivityClient) ListText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return textContent(c.list)
}

// Element возвращает элемент документа по id или nil.
func (c *ActivityClient) Element(id string) *html.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return findByID(c.doc, id)
}

// HTML сериализует весь документ.
func (c *ActivityClient) HTML() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return renderNode(c.doc)
}
