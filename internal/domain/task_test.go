package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "creates task with text", text: "Buy milk"},
		{name: "creates task with empty text", text: ""},
		{name: "creates task with special characters", text: "Call Bob @ 5pm!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewTask(tt.text)
			assert.NotEmpty(t, result.ID)
			assert.Equal(t, tt.text, result.Text)
			assert.False(t, result.Done)
			assert.Empty(t, result.ProjectID)
		})
	}
}

func TestNewTask_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, NewTask("a").ID, NewTask("a").ID)
}

func TestTask_Clone(t *testing.T) {
	original := &Task{ID: "x", Text: "a", Done: true, ProjectID: "p"}
	c := original.Clone()

	assert.Equal(t, original, c)
	c.Text = "b"
	assert.Equal(t, "a", original.Text)
}
