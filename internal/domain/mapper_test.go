package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskMapper_ToRecord(t *testing.T) {
	mapper := NewTaskMapper()

	record := mapper.ToRecord(&Task{ID: "t1", Text: "Buy milk", Done: true, ProjectID: "p1"})

	assert.Equal(t, &TaskRecord{ID: "t1", Text: "Buy milk", Done: true, ProjectID: "p1"}, record)
}

func TestTaskMapper_FromRecord(t *testing.T) {
	mapper := NewTaskMapper()

	task := mapper.FromRecord(&TaskRecord{ID: "t1", Text: "Walk dog"})
	assert.Equal(t, &Task{ID: "t1", Text: "Walk dog"}, task)

	task = mapper.FromRecord(&TaskRecord{Text: "legacy"})
	assert.NotEmpty(t, task.ID)
}

func TestMapper_ItemsRoundTrip(t *testing.T) {
	mapper := NewMapper()
	tasks := []*Task{
		{ID: "t1", Text: "one"},
		{ID: "t2", Text: "two", Done: true, ProjectID: "p1"},
	}

	data, err := mapper.EncodeItems(tasks)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"t1","text":"one","done":false},{"id":"t2","text":"two","done":true,"projectId":"p1"}]`, string(data))

	decoded, err := mapper.DecodeItems(data)
	require.NoError(t, err)
	assert.Equal(t, tasks, decoded)
}

func TestMapper_DecodeLegacyItems(t *testing.T) {
	mapper := NewMapper()

	tasks, err := mapper.DecodeItems([]byte(`[{"text":"a"},null,{"text":"b","done":true,"projectId":0}]`))
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "a", tasks[0].Text)
	assert.False(t, tasks[0].Done)
	assert.NotEmpty(t, tasks[0].ID)
	assert.Equal(t, "b", tasks[1].Text)
	assert.True(t, tasks[1].Done)
	assert.Equal(t, "0", tasks[1].ProjectID)
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
}

func TestMapper_DecodeLegacyProjects(t *testing.T) {
	mapper := NewMapper()

	projects, err := mapper.DecodeProjects([]byte(`[{"name":"Default","items":[{"text":"x"},null],"expanded":true},null,{"name":"Empty"}]`))
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, "Default", projects[0].Name)
	assert.True(t, projects[0].Expanded)
	require.Len(t, projects[0].Items, 1)
	assert.Equal(t, "x", projects[0].Items[0].Text)
	assert.NotEmpty(t, projects[0].ID)

	assert.Equal(t, "Empty", projects[1].Name)
	assert.NotNil(t, projects[1].Items)
	assert.False(t, projects[1].Expanded)
}

func TestMapper_ProjectsRoundTrip(t *testing.T) {
	mapper := NewMapper()
	projects := []*Project{
		{ID: "p1", Name: "Home", Expanded: true, Items: []*Task{{ID: "t1", Text: "one"}}},
		{ID: "p2", Name: "Work", Items: []*Task{}},
	}

	data, err := mapper.EncodeProjects(projects)
	require.NoError(t, err)

	decoded, err := mapper.DecodeProjects(data)
	require.NoError(t, err)
	assert.Equal(t, projects, decoded)
}

func TestMapper_DecodeInvalid(t *testing.T) {
	mapper := NewMapper()

	_, err := mapper.DecodeItems([]byte(`{"not":"a list"}`))
	assert.Error(t, err)

	_, err = mapper.DecodeProjects([]byte(`garbage`))
	assert.Error(t, err)
}
