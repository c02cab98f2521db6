package client

import (
	"bytes"
	"fmt"
	"html/template"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"activity-signup/internal/model"
)

const (
	placeholderOption  = "-- Select an activity --"
	noParticipantsText = "No participants yet — be the first to join!"
	loadFailedHTML     = "<p>Failed to load activities. Please try again later.</p>"
)

var cardTemplate = template.Must(template.New("card").Parse(`<div class="activity-card">
  <h4>{{.Name}}</h4>
  <p>{{.Description}}</p>
  <p><strong>Schedule:</strong> {{.Schedule}}</p>
  <p><strong>Availability:</strong> {{.SpotsLeft}} spots left</p>
  <div class="participants">
    <p class="participants-title">Participants</p>
    <ul class="participants-list">
    {{- range .Participants}}
      <li data-activity="{{$.Name}}" data-email="{{.}}">
        <span class="participant-email">{{.}}</span>
        <button type="button" class="delete-participant" aria-label="Remove participant">&#10005;</button>
      </li>
    {{- else}}
      <li class="no-participants">` + noParticipantsText + `</li>
    {{- end}}
    </ul>
  </div>
</div>`))

type cardData struct {
	Name         string
	Description  string
	Schedule     string
	SpotsLeft    int
	Participants []string
}

// renderCard собирает карточку кружка как фрагмент документа в контексте parent.
func renderCard(parent *html.Node, a model.Activity) ([]*html.Node, error) {
	var buf bytes.Buffer
	err := cardTemplate.Execute(&buf, cardData{
		Name:         a.Name,
		Description:  a.Description,
		Schedule:     a.Schedule,
		SpotsLeft:    a.SpotsLeft(),
		Participants: a.Participants,
	})
	if err != nil {
		return nil, fmt.Errorf("execute card template: %w", err)
	}

	return parseInto(parent, buf.Bytes())
}

// parseInto разбирает HTML-фрагмент в контексте parent. Узлы ещё не присоединены.
func parseInto(parent *html.Node, fragment []byte) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), parent)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return nodes, nil
}

func newOption(value, label string) *html.Node {
	opt := newElement(atom.Option, html.Attribute{Key: "value", Val: value})
	opt.AppendChild(&html.Node{Type: html.TextNode, Data: label})
	return opt
}
