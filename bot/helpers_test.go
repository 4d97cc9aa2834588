package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandArg(t *testing.T) {
	tests := []struct {
		name        string
		messageText string
		botUsername string
		want        string
	}{
		{"plain argument", "/event_add Friday match", "", "Friday match"},
		{"no argument", "/info", "", ""},
		{"only spaces", "/event_update    ", "", ""},
		{"trims whitespace", "/event_update  new text ", "", "new text"},
		{"mentioned command", "/limit@roster_bot 12", "roster_bot", "12"},
		{"mention inside argument", "/event_add match @roster_bot friday", "roster_bot", "match  friday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commandArg(tt.messageText, tt.botUsername))
		})
	}
}
