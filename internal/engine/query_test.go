package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wrqqqr/todoList/models"
)

func TestQueryVisible(t *testing.T) {
	e, _ := newTestEngine(t, &models.Pair{
		Active: []models.Task{
			{ID: "1", Text: "Buy MILK"},
			{ID: "2", Text: "walk dog"},
			{ID: "3", Text: "milkshake"},
		},
		Completed: []models.Task{
			{ID: "4", Text: "soy milk", Completed: true},
			{ID: "5", Text: "bread", Completed: true},
		},
	})

	e.SetSearchQuery("mil")
	v := e.QueryVisible()
	assert.Equal(t, []string{"1", "3"}, ids(v.Active))
	assert.Equal(t, []string{"4"}, ids(v.Completed))

	e.SetSearchQuery("MiLk")
	v = e.QueryVisible()
	assert.Equal(t, []string{"1", "3"}, ids(v.Active))

	e.SetSearchQuery("zzz")
	v = e.QueryVisible()
	assert.NotNil(t, v.Active)
	assert.Empty(t, v.Active)
	assert.Empty(t, v.Completed)

	e.SetSearchQuery("")
	v = e.QueryVisible()
	assert.Len(t, v.Active, 3)
	assert.Len(t, v.Completed, 2)
}

func TestQueryVisible_DoesNotMutate(t *testing.T) {
	e, adapter := newTestEngine(t, pairABCXY())
	before := e.Snapshot()

	e.SetSearchQuery("B")
	v := e.QueryVisible()
	v.Active[0].Text = "changed"

	assert.Equal(t, before, e.Snapshot())
	e.Flush()
	assert.Equal(t, 0, adapter.saveCount(), "setting a query never persists")
}

func TestQueryVisible_Unicode(t *testing.T) {
	e, _ := newTestEngine(t, &models.Pair{
		Active: []models.Task{
			{ID: "1", Text: "ΟΔΥΣΣΕΥΣ"},
			{ID: "2", Text: "Straße"},
		},
	})

	e.SetSearchQuery("οδυσσευς")
	assert.Equal(t, []string{"1"}, ids(e.QueryVisible().Active))

	e.SetSearchQuery("STRAßE")
	assert.Equal(t, []string{"2"}, ids(e.QueryVisible().Active))
}

func TestView_Collection(t *testing.T) {
	v := View{
		Active:    []models.Task{{ID: "a"}},
		Completed: []models.Task{{ID: "c"}},
	}
	assert.Equal(t, "a", v.Collection(models.CollectionActive)[0].ID)
	assert.Equal(t, "c", v.Collection(models.CollectionCompleted)[0].ID)
}
